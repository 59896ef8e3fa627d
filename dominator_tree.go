package llvmanalysis

// DominatorTree is the dominator tree of one function's CFG, rooted at
// ENTRY: node d dominates node n iff every path from ENTRY to n passes
// through d (spec.md §3/§4.2).
type DominatorTree struct {
	cfg  *CFG
	tree *domTree
}

// PostDominatorTree is the post-dominator tree, rooted at EXIT: node p
// post-dominates node n iff every path from n to EXIT passes through p.
// It is computed by the same CHK engine as DominatorTree, run over the
// reversed CFG (successors and predecessors swapped).
type PostDominatorTree struct {
	cfg  *CFG
	tree *domTree
}

// BuildDominatorTree computes the dominator tree of g, rooted at ENTRY.
func BuildDominatorTree(g *CFG) *DominatorTree {
	total := len(g.nodes)
	succ := func(n NodeID) []NodeID {
		edges := g.succs[n]
		out := make([]NodeID, len(edges))
		for i, e := range edges {
			out[i] = e.To
		}
		return out
	}
	pred := func(n NodeID) []NodeID { return g.preds[n] }
	return &DominatorTree{cfg: g, tree: buildDomTree(total, g.entry, succ, pred)}
}

// BuildPostDominatorTree computes the post-dominator tree of g, rooted at
// EXIT, by running the dominator engine over the reversed CFG.
func BuildPostDominatorTree(g *CFG) *PostDominatorTree {
	total := len(g.nodes)
	succ := func(n NodeID) []NodeID { return g.preds[n] } // reversed: CFG preds are pdom succs
	pred := func(n NodeID) []NodeID {
		edges := g.succs[n]
		out := make([]NodeID, len(edges))
		for i, e := range edges {
			out[i] = e.To
		}
		return out
	}
	return &PostDominatorTree{cfg: g, tree: buildDomTree(total, g.exit, succ, pred)}
}

// Root returns ENTRY.
func (t *DominatorTree) Root() NodeID { return t.tree.root }

// IDom returns the immediate dominator of n.
func (t *DominatorTree) IDom(n NodeID) (NodeID, bool) { return t.tree.IDom(n) }

// Children returns the nodes immediately dominated by n.
func (t *DominatorTree) Children(n NodeID) []NodeID { return t.tree.Children(n) }

// Dominates reports whether a dominates b.
func (t *DominatorTree) Dominates(a, b NodeID) bool { return t.tree.Dominates(a, b) }

// StrictlyDominates reports whether a strictly dominates b.
func (t *DominatorTree) StrictlyDominates(a, b NodeID) bool { return t.tree.StrictlyDominates(a, b) }

// DominatorChain returns the path from b up to ENTRY, or nil if b is
// unreachable from ENTRY.
func (t *DominatorTree) DominatorChain(b NodeID) []NodeID { return t.tree.Chain(b) }

// Nodes returns every node reachable from ENTRY, ascending by NodeID.
func (t *DominatorTree) Nodes() []NodeID { return t.tree.Nodes() }

// Edges returns every (dominator, dominee) pair, in deterministic order.
func (t *DominatorTree) Edges() [][2]NodeID { return t.tree.Edges() }

// Root returns EXIT.
func (t *PostDominatorTree) Root() NodeID { return t.tree.root }

// IDom returns the immediate post-dominator of n.
func (t *PostDominatorTree) IDom(n NodeID) (NodeID, bool) { return t.tree.IDom(n) }

// Children returns the nodes immediately post-dominated by n.
func (t *PostDominatorTree) Children(n NodeID) []NodeID { return t.tree.Children(n) }

// Dominates reports whether a post-dominates b.
func (t *PostDominatorTree) Dominates(a, b NodeID) bool { return t.tree.Dominates(a, b) }

// StrictlyDominates reports whether a strictly post-dominates b.
func (t *PostDominatorTree) StrictlyDominates(a, b NodeID) bool {
	return t.tree.StrictlyDominates(a, b)
}

// DominatorChain returns the path from b up to EXIT, or nil if b cannot
// reach EXIT.
func (t *PostDominatorTree) DominatorChain(b NodeID) []NodeID { return t.tree.Chain(b) }

// Nodes returns every node that can reach EXIT, ascending by NodeID.
func (t *PostDominatorTree) Nodes() []NodeID { return t.tree.Nodes() }

// Edges returns every (post-dominator, post-dominee) pair, in
// deterministic order.
func (t *PostDominatorTree) Edges() [][2]NodeID { return t.tree.Edges() }
