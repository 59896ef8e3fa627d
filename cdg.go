package llvmanalysis

// ControlDependenceGraph holds directed edges A→B meaning "B is
// control-dependent on A": there is a CFG edge A→X such that B
// post-dominates X but B does not strictly post-dominate A (spec.md
// §4.3). Nodes are real blocks only; ENTRY and EXIT never appear as a
// CDG source or sink.
type ControlDependenceGraph struct {
	cfg   *CFG
	succs map[NodeID][]NodeID
	preds map[NodeID][]NodeID
	nodes []NodeID
}

// BuildControlDependenceGraph derives the CDG of g from its
// post-dominator tree. Grounded on the teacher's ExtractCDG: for every
// branching block u (out-degree ≥ 2 — a single-successor edge can never
// introduce control dependence, since the successor always runs whenever
// u does) and every successor X of u, walk the post-dominator chain from
// X upward, stopping just before pdom.IDom(u); every node visited along
// that walk is control-dependent on u. A block with no path to EXIT has
// no immediate post-dominator and takes part in no CDG edge, as source or
// target.
func BuildControlDependenceGraph(g *CFG, pdom *PostDominatorTree) *ControlDependenceGraph {
	cdg := &ControlDependenceGraph{
		cfg:   g,
		succs: make(map[NodeID][]NodeID),
		preds: make(map[NodeID][]NodeID),
	}

	isReal := func(n NodeID) bool { return g.Kind(n) == NodeReal }
	seen := make(map[[2]NodeID]bool)

	for _, u := range g.Nodes() {
		if !isReal(u) {
			continue
		}
		edges := g.Successors(u)
		if len(edges) < 2 {
			continue
		}
		stop, hasStop := pdom.IDom(u)
		if !hasStop {
			continue // u has no path to EXIT
		}

		for _, e := range edges {
			w := e.To
			for isReal(w) {
				if w == stop {
					break
				}
				next, ok := pdom.IDom(w)
				if !ok {
					break // w has no path to EXIT
				}
				key := [2]NodeID{u, w}
				if !seen[key] {
					seen[key] = true
					cdg.succs[u] = append(cdg.succs[u], w)
					cdg.preds[w] = append(cdg.preds[w], u)
				}
				w = next
			}
		}
	}

	nodeSet := make(map[NodeID]bool)
	for _, n := range g.Nodes() {
		if isReal(n) {
			nodeSet[n] = true
		}
	}
	for n := range nodeSet {
		cdg.nodes = append(cdg.nodes, n)
	}
	sortNodeIDs(cdg.nodes)
	for n := range cdg.succs {
		sortNodeIDs(cdg.succs[n])
	}
	for n := range cdg.preds {
		sortNodeIDs(cdg.preds[n])
	}

	return cdg
}

// Nodes returns every real block, ascending by NodeID.
func (c *ControlDependenceGraph) Nodes() []NodeID { return c.nodes }

// Successors returns the blocks control-dependent on n.
func (c *ControlDependenceGraph) Successors(n NodeID) []NodeID { return c.succs[n] }

// Predecessors returns the blocks n is control-dependent on.
func (c *ControlDependenceGraph) Predecessors(n NodeID) []NodeID { return c.preds[n] }

// Edges returns every CDG edge, ordered by source NodeID then target
// NodeID.
func (c *ControlDependenceGraph) Edges() [][2]NodeID {
	var out [][2]NodeID
	for _, n := range c.nodes {
		for _, s := range c.succs[n] {
			out = append(out, [2]NodeID{n, s})
		}
	}
	return out
}

func sortNodeIDs(ids []NodeID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}
