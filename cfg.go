package llvmanalysis

import (
	"fmt"

	"github.com/llir/llvm/ir"
)

// CFG is the control-flow graph of one function: the set of real basic
// blocks plus two synthetic nodes, ENTRY and EXIT, per spec.md §3.
type CFG struct {
	nodes      []blockNode
	labelIndex map[string]NodeID // real block label -> NodeID
	entry      NodeID
	exit       NodeID
	succs      [][]CFGEdge
	preds      [][]NodeID
}

// Entry returns the synthetic ENTRY node.
func (g *CFG) Entry() NodeID { return g.entry }

// Exit returns the synthetic EXIT node.
func (g *CFG) Exit() NodeID { return g.exit }

// Nodes returns every CFG node in deterministic order: ENTRY, then real
// blocks in their source (declaration) order, then EXIT.
func (g *CFG) Nodes() []NodeID {
	out := make([]NodeID, len(g.nodes))
	for i := range g.nodes {
		out[i] = NodeID(i)
	}
	return out
}

// Kind reports whether id is ENTRY, EXIT, or a real block.
func (g *CFG) Kind(id NodeID) NodeKind { return g.nodes[id].kind }

// Label returns the node's display label: "ENTRY", "EXIT", or the real
// block's identifier.
func (g *CFG) Label(id NodeID) string {
	n := g.nodes[id]
	if n.kind != NodeReal {
		return n.kind.String()
	}
	return n.label
}

// Lookup resolves a real block's label to its NodeID.
func (g *CFG) Lookup(label string) (NodeID, bool) {
	id, ok := g.labelIndex[label]
	return id, ok
}

// Successors returns the outgoing edges of id in deterministic order
// (the order the terminator's successors were enumerated in).
func (g *CFG) Successors(id NodeID) []CFGEdge {
	return g.succs[id]
}

// Predecessors returns every node with an edge into id, in ascending
// NodeID order.
func (g *CFG) Predecessors(id NodeID) []NodeID {
	return g.preds[id]
}

// Edges returns every CFG edge in deterministic order: grouped by source
// NodeID ascending, then by enumeration order within that block's
// terminator.
func (g *CFG) Edges() []CFGEdge {
	var out []CFGEdge
	for _, es := range g.succs {
		out = append(out, es...)
	}
	return out
}

// BuildCFG constructs the control-flow graph of fn. A declaration (no
// blocks) yields a CFG of just ENTRY and EXIT, with no edge between them
// — there is no body to flow through.
func BuildCFG(fn *ir.Func) (*CFG, error) {
	n := len(fn.Blocks)
	g := &CFG{
		nodes:      make([]blockNode, n+2),
		labelIndex: make(map[string]NodeID, n),
		entry:      NodeID(0),
		exit:       NodeID(n + 1),
	}
	g.nodes[g.entry] = blockNode{kind: NodeEntry}
	g.nodes[g.exit] = blockNode{kind: NodeExit}
	for i, b := range fn.Blocks {
		id := NodeID(i + 1)
		g.nodes[id] = blockNode{kind: NodeReal, label: b.Name()}
		g.labelIndex[b.Name()] = id
	}

	g.succs = make([][]CFGEdge, n+2)
	g.preds = make([][]NodeID, n+2)
	addEdge := func(from, to NodeID, label EdgeLabel, caseValue string) {
		e := CFGEdge{From: from, To: to, Label: label, CaseValue: caseValue}
		g.succs[from] = append(g.succs[from], e)
		g.preds[to] = append(g.preds[to], from)
	}

	if n > 0 {
		addEdge(g.entry, NodeID(1), LabelEntry, "")
	}

	resolve := func(b *ir.Block) (NodeID, error) {
		id, ok := g.labelIndex[b.Name()]
		if !ok {
			return noNode, malformedIR(fn.Name(), fmt.Sprintf("terminator references unknown block %q", b.Ident()))
		}
		return id, nil
	}

	for i, b := range fn.Blocks {
		from := NodeID(i + 1)
		if err := emitTerminatorEdges(fn, from, b, g, resolve, addEdge); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// emitTerminatorEdges emits the CFG edges for one block's terminator, per
// the mapping in spec.md §3: unconditional/conditional branch, switch,
// indirect branch, invoke-like (normal+unwind), return/resume (to EXIT),
// and unreachable (a true sink — this library's pinned policy, see
// SPEC_FULL.md §9 item 1).
func emitTerminatorEdges(
	fn *ir.Func,
	from NodeID,
	b *ir.Block,
	g *CFG,
	resolve func(*ir.Block) (NodeID, error),
	addEdge func(from, to NodeID, label EdgeLabel, caseValue string),
) error {
	switch t := b.Term.(type) {
	case *ir.TermRet:
		addEdge(from, g.exit, LabelExit, "")
	case *ir.TermUnreachable:
		// No outgoing edges: unreachable marks undefined behavior, not a
		// normal function exit.
	case *ir.TermBr:
		to, err := resolve(t.Target)
		if err != nil {
			return err
		}
		addEdge(from, to, LabelUnconditional, "")
	case *ir.TermCondBr:
		toT, err := resolve(t.TargetTrue)
		if err != nil {
			return err
		}
		toF, err := resolve(t.TargetFalse)
		if err != nil {
			return err
		}
		addEdge(from, toT, LabelTrue, "")
		addEdge(from, toF, LabelFalse, "")
	case *ir.TermSwitch:
		for _, c := range t.Cases {
			to, err := resolve(c.Target)
			if err != nil {
				return err
			}
			addEdge(from, to, LabelCase, c.X.String())
		}
		toDefault, err := resolve(t.TargetDefault)
		if err != nil {
			return err
		}
		addEdge(from, toDefault, LabelDefault, "")
	case *ir.TermIndirectBr:
		for _, target := range t.ValidTargets {
			to, err := resolve(target)
			if err != nil {
				return err
			}
			addEdge(from, to, LabelIndirect, "")
		}
	case *ir.TermInvoke:
		toNormal, err := resolve(t.Normal)
		if err != nil {
			return err
		}
		toUnwind, err := resolve(t.Exception)
		if err != nil {
			return err
		}
		addEdge(from, toNormal, LabelNormal, "")
		addEdge(from, toUnwind, LabelUnwind, "")
	case *ir.TermResume:
		addEdge(from, g.exit, LabelExit, "")
	default:
		return malformedIR(fn.Name(), fmt.Sprintf("block %q has unrecognized terminator %T", b.Ident(), t))
	}
	return nil
}
