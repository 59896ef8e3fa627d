package llvmanalysis

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// valueOperands returns the value.Value operands instr carries, for the
// address-taken scan (§4.4: "a function name that appears as a
// non-called operand anywhere in the module is considered address-taken").
// This is deliberately a scan, not a general use-def walk: llir/llvm does
// not expose a single uniform Operands() accessor across every
// instruction kind, so this enumerates the shapes that matter for
// finding a *ir.Func hiding in a non-callee position — stores, returns,
// branch conditions, phi incoming values, and call/invoke arguments.
// Instruction kinds not listed here (rare in practice as carriers of a
// raw function value — e.g. arithmetic on numeric types) are skipped,
// matching the "scan, not a graph analysis" framing in the design notes.
func valueOperands(instr ir.Instruction) []value.Value {
	switch t := instr.(type) {
	case *ir.InstStore:
		return []value.Value{t.Src, t.Dst}
	case *ir.InstLoad:
		return []value.Value{t.Src}
	case *ir.InstGetElementPtr:
		ops := make([]value.Value, 0, 1+len(t.Indices))
		ops = append(ops, t.Src)
		for _, idx := range t.Indices {
			if v, ok := idx.(value.Value); ok {
				ops = append(ops, v)
			}
		}
		return ops
	case *ir.InstICmp:
		return []value.Value{t.X, t.Y}
	case *ir.InstFCmp:
		return []value.Value{t.X, t.Y}
	case *ir.InstSelect:
		return []value.Value{t.Cond, t.X, t.Y}
	case *ir.InstPhi:
		ops := make([]value.Value, 0, len(t.Incs))
		for _, inc := range t.Incs {
			ops = append(ops, inc.X)
		}
		return ops
	case *ir.InstCall:
		// Args only: the callee itself is handled separately by the call
		// graph builder, which is the one place "called" vs "address-taken"
		// is distinguished.
		return append([]value.Value(nil), t.Args...)
	case *ir.InstBitCast:
		return []value.Value{t.From}
	case *ir.InstPtrToInt:
		return []value.Value{t.From}
	case *ir.InstIntToPtr:
		return []value.Value{t.From}
	default:
		return nil
	}
}

// termOperands is valueOperands' counterpart for terminators. *ir.TermInvoke's
// Args are handled the same way InstCall's are; its Invokee is excluded for
// the same reason.
func termOperands(term ir.Terminator) []value.Value {
	switch t := term.(type) {
	case *ir.TermRet:
		if t.X != nil {
			return []value.Value{t.X}
		}
		return nil
	case *ir.TermCondBr:
		return []value.Value{t.Cond}
	case *ir.TermSwitch:
		return []value.Value{t.X}
	case *ir.TermInvoke:
		return append([]value.Value(nil), t.Args...)
	case *ir.TermResume:
		return []value.Value{t.X}
	default:
		return nil
	}
}

// collectAddressTakenFuncs returns the set of function names that appear
// as a value operand somewhere in mod other than the callee position of a
// direct call or invoke.
func collectAddressTakenFuncs(mod *ir.Module) map[string]bool {
	taken := make(map[string]bool)
	mark := func(v value.Value) {
		if fn, ok := v.(*ir.Func); ok {
			taken[fn.Name()] = true
		}
	}

	for _, fn := range mod.Funcs {
		for _, block := range fn.Blocks {
			for _, instr := range block.Insts {
				for _, v := range valueOperands(instr) {
					mark(v)
				}
			}
			if block.Term != nil {
				for _, v := range termOperands(block.Term) {
					mark(v)
				}
			}
		}
	}
	return taken
}
