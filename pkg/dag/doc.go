// Package dag provides a small directed graph of package identities.
//
// # Overview
//
// depsolve uses a [DAG] in two places: to describe the edges between the
// packages of a resolved install set, and to record which identities a feed
// crawl reached from which. Nodes are keyed by package id and carry a Row,
// which [transform.AssignLayers] fills in so that every dependency sits in a
// deeper row than its dependents. Reading the rows bottom-up yields install
// waves: packages in the same wave do not depend on each other.
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. Nodes must have unique IDs and edges must connect existing
// nodes:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "app"})
//	g.AddNode(dag.Node{ID: "lib"})
//	g.AddEdge(dag.Edge{From: "app", To: "lib"})
//
// Query the graph structure with [DAG.Children], [DAG.Parents], [DAG.NodesInRow],
// and related methods. Use [DAG.Validate] to verify the graph is acyclic.
//
// # Metadata
//
// Both nodes and the graph itself support arbitrary metadata via [Metadata] maps.
// Nodes built from a resolution store the chosen version under "version".
// Metadata maps are never nil after creation.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize access
// if multiple goroutines read or modify the same graph.
//
// [transform.AssignLayers]: github.com/matzehuels/depsolve/pkg/dag/transform.AssignLayers
package dag
