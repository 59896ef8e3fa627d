package llvmanalysis

import "golang.org/x/sync/errgroup"

// PrewarmFunctions concurrently builds the CFG, dominator tree,
// post-dominator tree, and control-dependence graph for every named
// function, using one goroutine per function analysis (spec.md §5: per-
// FunctionAnalysis state is independent, so building distinct functions'
// graphs concurrently is safe; this is the one sanctioned concurrent
// entry point into an otherwise single-threaded facade). It returns the
// first error any facade reports; the other goroutines are not cancelled
// and still run to completion.
func PrewarmFunctions(facades ...*FunctionAnalysis) error {
	var g errgroup.Group
	for _, fa := range facades {
		fa := fa
		g.Go(func() error {
			_, err := fa.ControlDependenceGraph()
			return err
		})
	}
	return g.Wait()
}

// PrewarmAll builds m's call graph and functions-by-type index, then
// prewarms every function's analyses concurrently via PrewarmFunctions.
// Building the module-level structures happens first and sequentially,
// as do the FunctionAnalysis lookups, which write to m's facade cache;
// only the per-function builds run concurrently.
func PrewarmAll(m *ModuleAnalysis) error {
	m.CallGraph()
	m.FunctionsByType()

	facades := make([]*FunctionAnalysis, 0, len(m.mod.Funcs))
	for _, name := range m.Functions() {
		fa, err := m.FunctionAnalysis(name)
		if err != nil {
			return err
		}
		facades = append(facades, fa)
	}
	return PrewarmFunctions(facades...)
}
