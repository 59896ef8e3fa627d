package llvmanalysis

import "github.com/llir/llvm/ir"

// ModuleAnalysis is a lazy, memoized container for one module's derived
// structures: call graph, functions-by-type index, and per-function
// facades (spec.md §4.7). Like FunctionAnalysis, it builds lazily on
// first access and is not safe for concurrent use — see PrewarmAll in
// parallel.go.
type ModuleAnalysis struct {
	mod    *ir.Module
	logger Logger

	callGraph *CallGraph
	typeIndex *FunctionsByType

	byName map[string]*ir.Func
	facade map[string]*FunctionAnalysis
}

// NewModuleAnalysis creates a per-module facade over mod.
func NewModuleAnalysis(mod *ir.Module, opts ...Option) *ModuleAnalysis {
	o := resolveOptions(opts)
	byName := make(map[string]*ir.Func, len(mod.Funcs))
	for _, fn := range mod.Funcs {
		byName[fn.Name()] = fn
	}
	return &ModuleAnalysis{
		mod:    mod,
		logger: o.logger,
		byName: byName,
		facade: make(map[string]*FunctionAnalysis),
	}
}

// Module returns the underlying IR module this facade analyzes.
func (m *ModuleAnalysis) Module() *ir.Module { return m.mod }

// CallGraph builds (if needed) and returns this module's call graph.
func (m *ModuleAnalysis) CallGraph() *CallGraph {
	if m.callGraph == nil {
		m.logger.Tracef("building call graph for module %s (%s functions)", m.mod.SourceFilename, humanCount(len(m.mod.Funcs)))
		m.callGraph = BuildCallGraph(m.mod)
	}
	return m.callGraph
}

// FunctionsByType builds (if needed) and returns this module's
// functions-by-type index.
func (m *ModuleAnalysis) FunctionsByType() *FunctionsByType {
	if m.typeIndex == nil {
		m.logger.Tracef("building functions-by-type index for module %s", m.mod.SourceFilename)
		m.typeIndex = BuildFunctionsByType(m.mod)
	}
	return m.typeIndex
}

// Functions returns every function name declared or defined in this
// module, in source order.
func (m *ModuleAnalysis) Functions() []string {
	names := make([]string, len(m.mod.Funcs))
	for i, fn := range m.mod.Funcs {
		names[i] = fn.Name()
	}
	return names
}

// FunctionAnalysis returns the lazily-constructed per-function facade for
// the named function, building and caching it on first call. It fails
// with ErrNoSuchFunction if name is not declared or defined in this
// module.
func (m *ModuleAnalysis) FunctionAnalysis(name string) (*FunctionAnalysis, error) {
	if fa, ok := m.facade[name]; ok {
		return fa, nil
	}
	fn, ok := m.byName[name]
	if !ok {
		return nil, noSuchFunction(name)
	}
	fa := NewFunctionAnalysis(fn, WithLogger(m.logger))
	m.facade[name] = fa
	return fa, nil
}
