package llvmanalysis

import (
	"testing"

	"github.com/llir/llvm/asm"
	"github.com/llir/llvm/ir"
)

// parseModule parses src as textual LLVM IR, failing the test on error.
// Grounded on the teacher's loader.go, which parsed its Go-source input
// once per test fixture and fatal'd on parse failure rather than
// threading errors through table-driven cases.
func parseModule(t *testing.T, name, src string) *ir.Module {
	t.Helper()
	mod, err := asm.ParseString(name, src)
	if err != nil {
		t.Fatalf("parsing %s: %v", name, err)
	}
	return mod
}

func mustFunc(t *testing.T, mod *ir.Module, name string) *ir.Func {
	t.Helper()
	for _, fn := range mod.Funcs {
		if fn.Name() == name {
			return fn
		}
	}
	t.Fatalf("function %s not found in module", name)
	return nil
}
