package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "app", Meta: dag.Metadata{"version": "1.0.0"}})
	_ = g.AddNode(dag.Node{ID: "log", Meta: dag.Metadata{"version": "1.4.0"}})
	_ = g.AddEdge(dag.Edge{From: "app", To: "log", Meta: dag.Metadata{"range": "(≥ 1.0.0)"}})

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{Ranges: true, Waves: true}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
	//   edge [fontsize=10, fontcolor="#555555"];
	//   ranksep=0.5;
	//   nodesep=0.3;
	//
	//   "app" [label="app\n1.0.0"];
	//   "log" [label="log\n1.4.0"];
	//
	//   { rank=same; "log"; } // wave 0
	//   { rank=same; "app"; } // wave 1
	//
	//   "app" -> "log" [label="(≥ 1.0.0)"];
	// }
}
