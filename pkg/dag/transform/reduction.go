package transform

import (
	"slices"

	"github.com/matzehuels/depsolve/pkg/dag"
)

// TransitiveReduction removes every edge u→v where v is also reachable from
// another child of u. What remains are the direct reasons each package is
// installed; reachability between nodes is unchanged and metadata on the
// surviving edges is kept.
func TransitiveReduction(g *dag.DAG) {
	for _, n := range g.Nodes() {
		children := slices.Clone(g.Children(n.ID))
		if len(children) < 2 {
			continue
		}
		for _, c := range children {
			if reachableFromSibling(g, n.ID, children, c) {
				g.RemoveEdge(n.ID, c)
			}
		}
	}
}

// reachableFromSibling reports whether target can be reached from another
// child still attached to parent, without passing through parent.
func reachableFromSibling(g *dag.DAG, parent string, siblings []string, target string) bool {
	seen := map[string]bool{parent: true, target: true}
	var stack []string
	for _, s := range siblings {
		if !seen[s] && g.HasEdge(parent, s) {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range g.Children(id) {
			if next == target {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}
