package llvmanalysis

import "testing"

func TestCallGraphDirectCalls(t *testing.T) {
	mod := parseModule(t, "direct.ll", `
define void @a() {
entry:
	call void @b()
	ret void
}
define void @b() {
entry:
	ret void
}
define void @isolated() {
entry:
	ret void
}
`)
	cg := BuildCallGraph(mod)

	if got := cg.CalleesOf("a"); len(got) != 1 || got[0] != "b" {
		t.Fatalf("CalleesOf(a) = %v, want [b]", got)
	}
	if got := cg.CallersOf("b"); len(got) != 1 || got[0] != "a" {
		t.Fatalf("CallersOf(b) = %v, want [a]", got)
	}
	if got := cg.CalleesOf("isolated"); len(got) != 0 {
		t.Fatalf("isolated function should have no callees, got %v", got)
	}
	found := false
	for _, n := range cg.Nodes() {
		if n == "isolated" {
			found = true
		}
	}
	if !found {
		t.Fatalf("isolated function with no call sites must still appear as a node")
	}
}

func TestCallGraphIndirectCallUsesSentinel(t *testing.T) {
	mod := parseModule(t, "indirect.ll", `
define void @a(void ()* %fp) {
entry:
	call void %fp()
	ret void
}
`)
	cg := BuildCallGraph(mod)
	callees := cg.CalleesOf("a")
	if len(callees) != 1 || callees[0] != AnyCallee {
		t.Fatalf("indirect call should produce a single ANY edge, got %v", callees)
	}
}

func TestCallGraphInlineAsmExcluded(t *testing.T) {
	mod := parseModule(t, "asm.ll", `
define void @a() {
entry:
	call void asm "nop", ""()
	ret void
}
`)
	cg := BuildCallGraph(mod)
	if got := cg.CalleesOf("a"); len(got) != 0 {
		t.Fatalf("inline-asm call sites must not produce any call-graph edge, got %v", got)
	}
}

func TestCallGraphIntrinsicsIncludedByDefault(t *testing.T) {
	mod := parseModule(t, "intrinsic.ll", `
declare void @llvm.trap()

define void @a() {
entry:
	call void @llvm.trap()
	ret void
}
`)
	cg := BuildCallGraph(mod)
	callees := cg.CalleesOf("a")
	if len(callees) != 1 || callees[0] != "llvm.trap" {
		t.Fatalf("CalleesOf(a) = %v, want [llvm.trap]", callees)
	}
	if !cg.IsIntrinsic("llvm.trap") {
		t.Fatalf("llvm.trap should be classified as an intrinsic")
	}
	intrinsics := cg.FunctionsThatAreIntrinsics()
	if len(intrinsics) != 1 || intrinsics[0] != "llvm.trap" {
		t.Fatalf("FunctionsThatAreIntrinsics() = %v, want [llvm.trap]", intrinsics)
	}
}

func TestCallGraphAddressTaken(t *testing.T) {
	mod := parseModule(t, "addrtaken.ll", `
define void @callee() {
entry:
	ret void
}
define void @not_taken_only_called() {
entry:
	ret void
}
define void @a() {
entry:
	call void @not_taken_only_called()
	store void ()* @callee, void ()** null
	ret void
}
`)
	cg := BuildCallGraph(mod)
	taken := cg.FunctionsThatMayBeCalledIndirectly()
	if len(taken) != 1 || taken[0] != "callee" {
		t.Fatalf("FunctionsThatMayBeCalledIndirectly() = %v, want [callee]", taken)
	}
}

func TestCallGraphDeterministicEdgeOrder(t *testing.T) {
	mod := parseModule(t, "multi.ll", `
define void @a() {
entry:
	call void @c()
	call void @b()
	ret void
}
define void @b() {
entry:
	ret void
}
define void @c() {
entry:
	ret void
}
`)
	cg1 := BuildCallGraph(mod)
	cg2 := BuildCallGraph(mod)
	e1, e2 := cg1.Edges(), cg2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("edge count differs across runs: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Fatalf("edge order not deterministic at index %d: %v vs %v", i, e1[i], e2[i])
		}
	}
	if e1[0][1] != "b" || e1[1][1] != "c" {
		t.Fatalf("edges from a should sort callee-alphabetically, got %v", e1)
	}
}
