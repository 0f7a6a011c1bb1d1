package transform

import "github.com/matzehuels/depsolve/pkg/dag"

// visit states of the cycle search.
const (
	unvisited = iota
	onStack
	done
)

// BreakCycles makes g acyclic by removing every edge that points back into
// the current search path, and returns the removed edges with their metadata.
//
// The search starts from the sources and then from any node still unvisited,
// in ID order, so the same graph always loses the same edges. Self references
// count as back edges.
func BreakCycles(g *dag.DAG) []dag.Edge {
	type frame struct {
		id   string
		next int
	}

	state := make(map[string]int, g.NodeCount())
	var back [][2]string

	walk := func(root string) {
		state[root] = onStack
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := g.Children(top.id)
			if top.next == len(children) {
				state[top.id] = done
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++
			switch state[child] {
			case unvisited:
				state[child] = onStack
				stack = append(stack, frame{id: child})
			case onStack:
				back = append(back, [2]string{top.id, child})
			}
		}
	}

	for _, n := range g.Sources() {
		if state[n.ID] == unvisited {
			walk(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if state[n.ID] == unvisited {
			walk(n.ID)
		}
	}
	if len(back) == 0 {
		return nil
	}

	meta := make(map[[2]string]dag.Metadata, len(back))
	for _, e := range g.Edges() {
		meta[[2]string{e.From, e.To}] = e.Meta
	}
	removed := make([]dag.Edge, 0, len(back))
	for _, e := range back {
		g.RemoveEdge(e[0], e[1])
		removed = append(removed, dag.Edge{From: e[0], To: e[1], Meta: meta[e]})
	}
	return removed
}
