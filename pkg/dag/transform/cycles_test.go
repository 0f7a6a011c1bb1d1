package transform

import (
	"testing"

	"github.com/matzehuels/depsolve/pkg/dag"
)

func build(ids []string, edges [][2]string) *dag.DAG {
	g := dag.New(nil)
	for _, id := range ids {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		edges       [][2]string
		wantRemoved int
		wantEdges   int
	}{
		{"empty", nil, nil, 0, 0},
		{"single node", []string{"a"}, nil, 0, 0},
		{"chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0, 2},
		{"pair", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1, 2},
		{"two cycles", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}}, 2, 2},
		{"self reference", []string{"a"}, [][2]string{{"a", "a"}}, 1, 0},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(tt.ids, tt.edges)
			if removed := BreakCycles(g); len(removed) != tt.wantRemoved {
				t.Errorf("BreakCycles() removed %v, want %d edges", removed, tt.wantRemoved)
			}
			if g.EdgeCount() != tt.wantEdges {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantEdges)
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate() after BreakCycles = %v", err)
			}
		})
	}
}

func TestBreakCyclesRemovesBackEdge(t *testing.T) {
	// web → log → fmt → log: the edge closing the loop goes, not web → log.
	g := build([]string{"web", "log", "fmt"}, [][2]string{{"web", "log"}, {"log", "fmt"}, {"fmt", "log"}})

	removed := BreakCycles(g)

	if len(removed) != 1 || removed[0].From != "fmt" || removed[0].To != "log" {
		t.Errorf("removed = %v, want [fmt → log]", removed)
	}
	if !g.HasEdge("web", "log") || !g.HasEdge("log", "fmt") {
		t.Errorf("forward edges removed: %v", g.Edges())
	}
	if g.HasEdge("fmt", "log") {
		t.Error("back edge fmt → log kept")
	}
}

func TestBreakCyclesKeepsMetadata(t *testing.T) {
	g := build([]string{"a", "b"}, [][2]string{{"a", "b"}})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a", Meta: dag.Metadata{"range": "(≥ 1.0.0)"}})

	removed := BreakCycles(g)

	if len(removed) != 1 {
		t.Fatalf("removed %d edges, want 1", len(removed))
	}
	if got := removed[0].Meta["range"]; got != "(≥ 1.0.0)" {
		t.Errorf("removed edge range = %v", got)
	}
}
