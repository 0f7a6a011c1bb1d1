package transform_test

import (
	"fmt"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
)

func ExampleTransitiveReduction() {
	// web → auth → log with a redundant web → log
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "web"})
	_ = g.AddNode(dag.Node{ID: "auth"})
	_ = g.AddNode(dag.Node{ID: "log"})
	_ = g.AddEdge(dag.Edge{From: "web", To: "auth"})
	_ = g.AddEdge(dag.Edge{From: "auth", To: "log"})
	_ = g.AddEdge(dag.Edge{From: "web", To: "log"})

	fmt.Println("Before reduction:", g.EdgeCount(), "edges")
	transform.TransitiveReduction(g)
	fmt.Println("After reduction:", g.EdgeCount(), "edges")
	// Output:
	// Before reduction: 3 edges
	// After reduction: 2 edges
}

func ExampleAssignLayers() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "web"})
	_ = g.AddNode(dag.Node{ID: "log"})
	_ = g.AddNode(dag.Node{ID: "fmt"})
	_ = g.AddEdge(dag.Edge{From: "web", To: "log"})
	_ = g.AddEdge(dag.Edge{From: "log", To: "fmt"})

	transform.AssignLayers(g)

	for _, id := range []string{"web", "log", "fmt"} {
		n, _ := g.Node(id)
		fmt.Println(id, "row:", n.Row)
	}
	// Output:
	// web row: 0
	// log row: 1
	// fmt row: 2
}

func ExampleInstallWaves() {
	g := dag.New(nil)
	for _, id := range []string{"web", "auth", "cache", "log"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "web", To: "auth"})
	_ = g.AddEdge(dag.Edge{From: "web", To: "cache"})
	_ = g.AddEdge(dag.Edge{From: "auth", To: "log"})
	_ = g.AddEdge(dag.Edge{From: "cache", To: "log"})

	for i, wave := range transform.InstallWaves(g) {
		fmt.Println(i, wave)
	}
	// Output:
	// 0 [log]
	// 1 [auth cache]
	// 2 [web]
}

func ExampleBreakCycles() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "A"})
	_ = g.AddNode(dag.Node{ID: "B"})
	_ = g.AddNode(dag.Node{ID: "C"})
	_ = g.AddEdge(dag.Edge{From: "A", To: "B"})
	_ = g.AddEdge(dag.Edge{From: "B", To: "C"})
	_ = g.AddEdge(dag.Edge{From: "C", To: "A"})

	for _, e := range transform.BreakCycles(g) {
		fmt.Println("cut", e.From, "->", e.To)
	}
	fmt.Println("edges left:", g.EdgeCount())
	// Output:
	// cut C -> A
	// edges left: 2
}
