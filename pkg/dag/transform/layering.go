package transform

import (
	"slices"

	"github.com/matzehuels/depsolve/pkg/dag"
)

// AssignLayers assigns nodes to rows based on their depth in the graph.
//
// AssignLayers uses a longest-path algorithm via topological sort (Kahn's
// algorithm). Each node is placed at one plus the maximum row of any of its
// parents, so sources sit at row 0 and every dependent is strictly above its
// dependencies. Existing row assignments are overwritten.
//
// AssignLayers assumes the graph is acyclic. Nodes on a cycle never reach
// zero in-degree and keep row 0; run [BreakCycles] first.
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}

// InstallWaves groups node IDs by height: wave 0 holds the sinks and a node
// lands one wave after its highest dependency. IDs within a wave are sorted.
// Nodes on a cycle are placed in a final wave; run [BreakCycles] first to
// avoid that.
func InstallWaves(g *dag.DAG) [][]string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil
	}

	outDegree := make(map[string]int, len(nodes))
	height := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		outDegree[n.ID] = g.OutDegree(n.ID)
		if outDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	placed := make(map[string]bool, len(nodes))
	maxHeight := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		placed[curr] = true
		maxHeight = max(maxHeight, height[curr])

		for _, parent := range g.Parents(curr) {
			height[parent] = max(height[parent], height[curr]+1)
			outDegree[parent]--
			if outDegree[parent] == 0 {
				queue = append(queue, parent)
			}
		}
	}

	waves := make([][]string, maxHeight+1)
	var stuck []string
	for _, n := range nodes {
		if !placed[n.ID] {
			stuck = append(stuck, n.ID)
			continue
		}
		waves[height[n.ID]] = append(waves[height[n.ID]], n.ID)
	}
	if len(stuck) > 0 {
		waves = append(waves, stuck)
	}
	for _, w := range waves {
		slices.Sort(w)
	}
	return waves
}
