package llvmanalysis

import "testing"

// TestDiamondDominators exercises the "diamond" scenario: entry branches
// to two arms that both rejoin at a single merge block before returning.
func TestDiamondDominators(t *testing.T) {
	mod := parseModule(t, "diamond.ll", `
define void @f(i1 %cond) {
entry:
	br i1 %cond, label %b, label %c
b:
	br label %d
c:
	br label %d
d:
	ret void
}
`)
	fn := mustFunc(t, mod, "f")
	cfg, err := BuildCFG(fn)
	if err != nil {
		t.Fatalf("BuildCFG: %v", err)
	}
	entry, _ := cfg.Lookup("entry")
	b, _ := cfg.Lookup("b")
	c, _ := cfg.Lookup("c")
	d, _ := cfg.Lookup("d")

	dom := BuildDominatorTree(cfg)
	for name, n := range map[string]NodeID{"b": b, "c": c, "d": d} {
		idom, ok := dom.IDom(n)
		if !ok || idom != entry {
			t.Errorf("IDom(%s) = %v,%v, want entry", name, idom, ok)
		}
	}
	if !dom.Dominates(entry, d) {
		t.Errorf("entry should dominate d")
	}
	if dom.Dominates(b, d) {
		t.Errorf("b must not dominate d: there is a path entry->c->d that never visits b")
	}

	pdom := BuildPostDominatorTree(cfg)
	for name, n := range map[string]NodeID{"b": b, "c": c, "entry": entry} {
		idom, ok := pdom.IDom(n)
		if !ok || idom != d {
			t.Errorf("post-IDom(%s) = %v,%v, want d", name, idom, ok)
		}
	}
}

// TestLoopControlDependence exercises a single-latch loop: entry falls
// into b, b falls into c, and c is the loop's only branching block —
// back to b, or out to d and return. c is the sole source of control
// dependence: both its own re-execution and b's re-execution hinge on
// the branch at the end of c.
func TestLoopControlDependence(t *testing.T) {
	mod := parseModule(t, "loop.ll", `
define void @f(i1 %again) {
entry:
	br label %b
b:
	br label %c
c:
	br i1 %again, label %b, label %d
d:
	ret void
}
`)
	fn := mustFunc(t, mod, "f")
	cfg, err := BuildCFG(fn)
	if err != nil {
		t.Fatalf("BuildCFG: %v", err)
	}
	b, _ := cfg.Lookup("b")
	c, _ := cfg.Lookup("c")

	pdom := BuildPostDominatorTree(cfg)
	cdg := BuildControlDependenceGraph(cfg, pdom)

	want := map[[2]NodeID]bool{{c, b}: true, {c, c}: true}
	got := cdg.Edges()
	if len(got) != len(want) {
		t.Fatalf("expected edges %v, got %v", want, got)
	}
	for _, e := range got {
		if !want[e] {
			t.Errorf("unexpected edge %+v", e)
		}
		if e[0] != c {
			t.Errorf("every edge should originate from c, the loop's only branching block, got %+v", e)
		}
	}
}

// TestTwoReturnsControlDependence exercises entry branching straight to
// two distinct return blocks with no merge point.
func TestTwoReturnsControlDependence(t *testing.T) {
	mod := parseModule(t, "tworet.ll", `
define i32 @f(i1 %cond) {
entry:
	br i1 %cond, label %b, label %c
b:
	ret i32 1
c:
	ret i32 0
}
`)
	fn := mustFunc(t, mod, "f")
	cfg, err := BuildCFG(fn)
	if err != nil {
		t.Fatalf("BuildCFG: %v", err)
	}
	entry, _ := cfg.Lookup("entry")
	b, _ := cfg.Lookup("b")
	c, _ := cfg.Lookup("c")

	pdom := BuildPostDominatorTree(cfg)
	cdg := BuildControlDependenceGraph(cfg, pdom)

	want := map[[2]NodeID]bool{{entry, b}: true, {entry, c}: true}
	got := cdg.Edges()
	if len(got) != len(want) {
		t.Fatalf("expected %d edges, got %d: %+v", len(want), len(got), got)
	}
	for _, e := range got {
		if !want[e] {
			t.Errorf("unexpected edge %+v", e)
		}
	}
}

func TestDominatorChainIncludesRoot(t *testing.T) {
	mod := parseModule(t, "chain.ll", `
define void @f() {
entry:
	br label %mid
mid:
	br label %last
last:
	ret void
}
`)
	fn := mustFunc(t, mod, "f")
	cfg, _ := BuildCFG(fn)
	entry, _ := cfg.Lookup("entry")
	mid, _ := cfg.Lookup("mid")
	last, _ := cfg.Lookup("last")

	dom := BuildDominatorTree(cfg)
	chain := dom.DominatorChain(last)
	want := []NodeID{last, mid, entry, cfg.Entry()}
	if len(chain) != len(want) {
		t.Fatalf("chain length = %d, want %d: %+v", len(chain), len(want), chain)
	}
	for i, n := range want {
		if chain[i] != n {
			t.Errorf("chain[%d] = %v, want %v", i, chain[i], n)
		}
	}
}
