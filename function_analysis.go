package llvmanalysis

import "github.com/llir/llvm/ir"

// FunctionAnalysis is a lazy, memoized container for one function's
// derived structures: CFG, dominator tree, post-dominator tree, and
// control-dependence graph (spec.md §4.6). Each is built on first access
// and reused thereafter (idempotent, per §8 invariant 7). A
// FunctionAnalysis is created cheaply (O(1)) and is not safe for
// concurrent use from multiple goroutines — see spec.md §5 and
// PrewarmFunctions in parallel.go for the one sanctioned way to
// parallelize across functions.
type FunctionAnalysis struct {
	fn     *ir.Func
	logger Logger

	cfg    *CFG
	dom    *DominatorTree
	pdom   *PostDominatorTree
	cdg    *ControlDependenceGraph
	cfgErr error
}

// Option configures a facade constructor. The only option today is
// WithLogger; more can be added without breaking existing call sites.
type Option func(*facadeOptions)

type facadeOptions struct {
	logger Logger
}

// WithLogger attaches a Logger that receives tracing of expensive lazy
// builds. Omitted, a facade stays silent (NopLogger), per spec.md §5's
// no-I/O-by-default contract.
func WithLogger(l Logger) Option {
	return func(o *facadeOptions) { o.logger = l }
}

func resolveOptions(opts []Option) facadeOptions {
	o := facadeOptions{logger: NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewFunctionAnalysis creates a per-function facade over fn. fn may be a
// declaration (no blocks); CFG/dominator/CDG construction is deferred
// until first requested, and will report ErrMalformedIR-free but
// trivially-empty structures for a declaration (a CFG of just ENTRY and
// EXIT, connected only if the function is a definition).
func NewFunctionAnalysis(fn *ir.Func, opts ...Option) *FunctionAnalysis {
	o := resolveOptions(opts)
	return &FunctionAnalysis{fn: fn, logger: o.logger}
}

// Function returns the underlying IR function this facade analyzes.
func (f *FunctionAnalysis) Function() *ir.Func { return f.fn }

// ControlFlowGraph builds (if needed) and returns this function's CFG.
func (f *FunctionAnalysis) ControlFlowGraph() (*CFG, error) {
	if f.cfg == nil && f.cfgErr == nil {
		f.logger.Tracef("building CFG for %s (%s blocks)", f.fn.Name(), humanCount(len(f.fn.Blocks)))
		f.cfg, f.cfgErr = BuildCFG(f.fn)
	}
	return f.cfg, f.cfgErr
}

// DominatorTree builds (if needed) and returns this function's dominator
// tree, constructing its CFG prerequisite first.
func (f *FunctionAnalysis) DominatorTree() (*DominatorTree, error) {
	if f.dom != nil {
		return f.dom, nil
	}
	cfg, err := f.ControlFlowGraph()
	if err != nil {
		return nil, err
	}
	f.logger.Tracef("building dominator tree for %s", f.fn.Name())
	f.dom = BuildDominatorTree(cfg)
	return f.dom, nil
}

// PostDominatorTree builds (if needed) and returns this function's
// post-dominator tree, constructing its CFG prerequisite first.
func (f *FunctionAnalysis) PostDominatorTree() (*PostDominatorTree, error) {
	if f.pdom != nil {
		return f.pdom, nil
	}
	cfg, err := f.ControlFlowGraph()
	if err != nil {
		return nil, err
	}
	f.logger.Tracef("building post-dominator tree for %s", f.fn.Name())
	f.pdom = BuildPostDominatorTree(cfg)
	return f.pdom, nil
}

// ControlDependenceGraph builds (if needed) and returns this function's
// control-dependence graph, constructing its CFG and post-dominator-tree
// prerequisites first.
func (f *FunctionAnalysis) ControlDependenceGraph() (*ControlDependenceGraph, error) {
	if f.cdg != nil {
		return f.cdg, nil
	}
	cfg, err := f.ControlFlowGraph()
	if err != nil {
		return nil, err
	}
	pdom, err := f.PostDominatorTree()
	if err != nil {
		return nil, err
	}
	f.logger.Tracef("building control-dependence graph for %s", f.fn.Name())
	f.cdg = BuildControlDependenceGraph(cfg, pdom)
	return f.cdg, nil
}
