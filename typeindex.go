package llvmanalysis

import (
	"sort"

	"github.com/llir/llvm/ir"
)

// FunctionsByType maps a function-type signature (parameter types, return
// type, variadic flag, spec.md §4.5) to the function names in a module
// that carry it. The signature key is the LLVM-IR textual rendering of
// the function's type (fn.Sig.String(), e.g. "i32 (i32, i32)"), which
// llir/llvm's own type printer already renders canonically — parameter
// types, return type, and variadic "..." all fold into one comparable
// string, so no separate struct key is needed.
type FunctionsByType struct {
	bySignature map[string][]string
	order       []string // signatures in first-occurrence (source) order
}

// BuildFunctionsByType indexes every function declared or defined in mod
// by its signature, in one pass (spec.md §4.5).
func BuildFunctionsByType(mod *ir.Module) *FunctionsByType {
	idx := &FunctionsByType{bySignature: make(map[string][]string)}
	for _, fn := range mod.Funcs {
		sig := fn.Sig.String()
		if _, ok := idx.bySignature[sig]; !ok {
			idx.order = append(idx.order, sig)
		}
		idx.bySignature[sig] = append(idx.bySignature[sig], fn.Name())
	}
	for sig := range idx.bySignature {
		sort.Strings(idx.bySignature[sig])
	}
	return idx
}

// Signatures returns every indexed signature, in first-occurrence order.
func (idx *FunctionsByType) Signatures() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// FunctionsWithType returns the function names sharing signature sig,
// alphabetically, or nil if no function has that signature.
func (idx *FunctionsByType) FunctionsWithType(sig string) []string {
	return idx.bySignature[sig]
}
