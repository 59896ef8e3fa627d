package llvmanalysis

import "github.com/llir/llvm/ir"

// CrossModuleAnalysis composes several modules' facades plus the union of
// their call graphs, name-resolved across module boundaries (spec.md §3,
// §4.8, Scenario 6). Two modules may legitimately declare the same
// function name as an external declaration in one and a definition in
// another; the union keeps a single node per name and merges edges.
type CrossModuleAnalysis struct {
	logger  Logger
	names   []string // module names, in construction order
	byName  map[string]*ModuleAnalysis
	crossCG *CallGraph
}

// NewCrossModuleAnalysis builds a facade over mods, keyed by each
// module's SourceFilename. It fails with ErrDuplicateModule if two
// modules share a name.
func NewCrossModuleAnalysis(mods []*ir.Module, opts ...Option) (*CrossModuleAnalysis, error) {
	o := resolveOptions(opts)
	c := &CrossModuleAnalysis{
		logger: o.logger,
		byName: make(map[string]*ModuleAnalysis, len(mods)),
	}
	for _, mod := range mods {
		name := mod.SourceFilename
		if _, exists := c.byName[name]; exists {
			return nil, duplicateModule(name)
		}
		c.names = append(c.names, name)
		c.byName[name] = NewModuleAnalysis(mod, WithLogger(c.logger))
	}
	return c, nil
}

// ModuleNames returns every module name, in construction order.
func (c *CrossModuleAnalysis) ModuleNames() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// ModuleAnalysis returns the per-module facade for the named module. It
// fails with ErrNoSuchModule if no module with that name was given to
// NewCrossModuleAnalysis.
func (c *CrossModuleAnalysis) ModuleAnalysis(name string) (*ModuleAnalysis, error) {
	m, ok := c.byName[name]
	if !ok {
		return nil, noSuchModule(name)
	}
	return m, nil
}

// CrossModuleCallGraph builds (if needed) and returns the union of every
// module's call graph, merged by function name (spec.md §3). A function
// defined in one module and merely declared (or absent) in another
// contributes one node, marked defined if any contributing module
// defines it.
func (c *CrossModuleAnalysis) CrossModuleCallGraph() *CallGraph {
	if c.crossCG != nil {
		return c.crossCG
	}
	c.logger.Tracef("building cross-module call graph over %s modules", humanCount(len(c.names)))

	merged := &CallGraph{
		defined:   make(map[string]bool),
		intrinsic: make(map[string]bool),
		succs:     make(map[string][]string),
		preds:     make(map[string][]string),
	}
	seenNode := make(map[string]bool)
	seenEdge := make(map[[2]string]bool)
	addressTaken := make(map[string]bool)

	for _, name := range c.names {
		cg := c.byName[name].CallGraph()
		for _, n := range cg.Nodes() {
			if !seenNode[n] {
				seenNode[n] = true
				merged.order = append(merged.order, n)
			}
			if cg.IsDefined(n) {
				merged.defined[n] = true
			}
			if cg.IsIntrinsic(n) {
				merged.intrinsic[n] = true
			}
		}
		for _, e := range cg.Edges() {
			key := [2]string{e[0], e[1]}
			if seenEdge[key] {
				continue
			}
			seenEdge[key] = true
			merged.succs[e[0]] = append(merged.succs[e[0]], e[1])
			merged.preds[e[1]] = append(merged.preds[e[1]], e[0])
		}
		for _, n := range cg.FunctionsThatMayBeCalledIndirectly() {
			addressTaken[n] = true
		}
	}

	merged.addressTaken = addressTaken
	for k := range merged.succs {
		merged.succs[k] = dedupSortedStrings(merged.succs[k])
	}
	for k := range merged.preds {
		merged.preds[k] = dedupSortedStrings(merged.preds[k])
	}

	c.crossCG = merged
	return c.crossCG
}
