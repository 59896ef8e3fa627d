package llvmanalysis

import (
	"sort"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// AnyCallee is the distinguished call-graph node standing in for "unknown
// indirect target" (spec.md §3/§4.4).
const AnyCallee = "ANY"

// intrinsicPrefix marks LLVM intrinsic functions (llvm.memcpy.*, llvm.dbg.*,
// ...); by default they are included in the call graph like any other
// direct call (spec.md §9's stated default), with IsIntrinsic letting
// callers filter them back out.
const intrinsicPrefix = "llvm."

// CallGraph is the per-module call graph: caller function name → callee
// function name, for every statically-named call site, plus AnyCallee
// edges for indirect calls and inline-asm exclusion (spec.md §4.4).
type CallGraph struct {
	order        []string // deterministic node enumeration order
	defined      map[string]bool
	intrinsic    map[string]bool
	succs        map[string][]string
	preds        map[string][]string
	addressTaken map[string]bool
}

// BuildCallGraph scans every defined function in mod for call-like
// operations (ir.InstCall and ir.TermInvoke) and builds the call graph
// per spec.md §4.4.
func BuildCallGraph(mod *ir.Module) *CallGraph {
	cg := &CallGraph{
		defined:   make(map[string]bool),
		intrinsic: make(map[string]bool),
		succs:     make(map[string][]string),
		preds:     make(map[string][]string),
	}

	seenNode := make(map[string]bool)
	addNode := func(name string, defined bool) {
		if !seenNode[name] {
			seenNode[name] = true
			cg.order = append(cg.order, name)
		}
		if defined {
			cg.defined[name] = true
		}
		if strings.HasPrefix(name, intrinsicPrefix) {
			cg.intrinsic[name] = true
		}
	}

	seenEdge := make(map[[2]string]bool)
	addEdge := func(from, to string) {
		key := [2]string{from, to}
		if seenEdge[key] {
			return
		}
		seenEdge[key] = true
		cg.succs[from] = append(cg.succs[from], to)
		cg.preds[to] = append(cg.preds[to], from)
	}

	// Defined functions are nodes even when isolated (no call sites at
	// all), enumerated in source order first so Functions()-style
	// consumers see a stable, predictable front of the list.
	for _, fn := range mod.Funcs {
		addNode(fn.Name(), len(fn.Blocks) > 0)
	}

	handleCallSite := func(caller string, callee value.Value) {
		switch v := callee.(type) {
		case *ir.Func:
			addNode(v.Name(), len(v.Blocks) > 0)
			addEdge(caller, v.Name())
		case *ir.InlineAsm:
			// No symbolic callee: excluded per spec.md §4.4/§9.
		default:
			addNode(AnyCallee, false)
			addEdge(caller, AnyCallee)
		}
	}

	for _, fn := range mod.Funcs {
		if len(fn.Blocks) == 0 {
			continue // declaration: no call sites to scan
		}
		caller := fn.Name()
		for _, block := range fn.Blocks {
			for _, instr := range block.Insts {
				if call, ok := instr.(*ir.InstCall); ok {
					handleCallSite(caller, call.Callee)
				}
			}
			if invoke, ok := block.Term.(*ir.TermInvoke); ok {
				handleCallSite(caller, invoke.Invokee)
			}
		}
	}

	cg.addressTaken = collectAddressTakenFuncs(mod)

	for k := range cg.succs {
		cg.succs[k] = dedupSortedStrings(cg.succs[k])
	}
	for k := range cg.preds {
		cg.preds[k] = dedupSortedStrings(cg.preds[k])
	}

	return cg
}

// Nodes returns every call-graph node: every function declared or
// defined in the module, in source order, then any other callee
// (AnyCallee) in discovery order.
func (cg *CallGraph) Nodes() []string {
	out := make([]string, len(cg.order))
	copy(out, cg.order)
	return out
}

// Edges returns every call-graph edge, ordered by caller name then callee
// name.
func (cg *CallGraph) Edges() [][2]string {
	callers := make([]string, 0, len(cg.succs))
	for c := range cg.succs {
		callers = append(callers, c)
	}
	sort.Strings(callers)

	var out [][2]string
	for _, c := range callers {
		for _, callee := range cg.succs[c] {
			out = append(out, [2]string{c, callee})
		}
	}
	return out
}

// Successors returns the callees of name, alphabetically.
func (cg *CallGraph) Successors(name string) []string { return cg.succs[name] }

// Predecessors returns the callers of name, alphabetically.
func (cg *CallGraph) Predecessors(name string) []string { return cg.preds[name] }

// CalleesOf is an alias for Successors, matching the query-surface name
// in spec.md §6.
func (cg *CallGraph) CalleesOf(name string) []string { return cg.Successors(name) }

// CallersOf is an alias for Predecessors, matching the query-surface name
// in spec.md §6.
func (cg *CallGraph) CallersOf(name string) []string { return cg.Predecessors(name) }

// IsDefined reports whether name is a function defined (with a body) in
// this module, as opposed to an external declaration or AnyCallee.
func (cg *CallGraph) IsDefined(name string) bool { return cg.defined[name] }

// IsIntrinsic reports whether name is an LLVM intrinsic (name prefixed
// "llvm.").
func (cg *CallGraph) IsIntrinsic(name string) bool { return cg.intrinsic[name] }

// FunctionsThatAreIntrinsics returns every intrinsic-named callee that
// appears in the graph, sorted, so callers that want spec.md §9's
// "filter them back out" behavior can do so themselves.
func (cg *CallGraph) FunctionsThatAreIntrinsics() []string {
	names := make([]string, 0, len(cg.intrinsic))
	for n := range cg.intrinsic {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FunctionsThatMayBeCalledIndirectly returns every function name that
// appears as a non-called operand somewhere in the module — i.e. its
// address is taken — per the address-taken analysis in spec.md §4.4/
// design notes.
func (cg *CallGraph) FunctionsThatMayBeCalledIndirectly() []string {
	names := make([]string, 0, len(cg.addressTaken))
	for n := range cg.addressTaken {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
