package transform

import (
	"reflect"
	"testing"
)

func TestAssignLayers(t *testing.T) {
	g := build([]string{"web", "auth", "log", "fmt"}, [][2]string{
		{"web", "auth"}, {"web", "log"}, {"auth", "log"}, {"log", "fmt"},
	})

	AssignLayers(g)

	want := map[string]int{"web": 0, "auth": 1, "log": 2, "fmt": 3}
	for id, row := range want {
		if n, _ := g.Node(id); n.Row != row {
			t.Errorf("%s row = %d, want %d", id, n.Row, row)
		}
	}
}

func TestInstallWaves(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  [][]string
	}{
		{"empty", nil, nil, nil},
		{"independent", []string{"b", "a"}, nil, [][]string{{"a", "b"}}},
		{
			"diamond",
			[]string{"web", "auth", "cache", "log"},
			[][2]string{{"web", "auth"}, {"web", "cache"}, {"auth", "log"}, {"cache", "log"}},
			[][]string{{"log"}, {"auth", "cache"}, {"web"}},
		},
		{
			"uneven depth",
			[]string{"web", "cli", "log", "fmt"},
			[][2]string{{"web", "log"}, {"log", "fmt"}, {"cli", "fmt"}},
			[][]string{{"fmt"}, {"cli", "log"}, {"web"}},
		},
		{
			"cycle lands last",
			[]string{"a", "b", "c"},
			[][2]string{{"a", "b"}, {"b", "a"}},
			[][]string{{"c"}, {"a", "b"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstallWaves(build(tt.ids, tt.edges))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InstallWaves() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransitiveReduction(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		edges    [][2]string
		gone     [][2]string
		wantLeft int
	}{
		{
			"triangle",
			[]string{"web", "auth", "log"},
			[][2]string{{"web", "auth"}, {"auth", "log"}, {"web", "log"}},
			[][2]string{{"web", "log"}},
			2,
		},
		{
			"long detour",
			[]string{"web", "auth", "crypto", "log"},
			[][2]string{{"web", "auth"}, {"auth", "crypto"}, {"crypto", "log"}, {"web", "log"}},
			[][2]string{{"web", "log"}},
			3,
		},
		{
			"diamond keeps both arms",
			[]string{"web", "auth", "cache", "log"},
			[][2]string{{"web", "auth"}, {"web", "cache"}, {"auth", "log"}, {"cache", "log"}},
			nil,
			4,
		},
		{
			"cycle between children keeps one",
			[]string{"web", "a", "b"},
			[][2]string{{"web", "a"}, {"web", "b"}, {"a", "b"}, {"b", "a"}},
			[][2]string{{"web", "a"}},
			3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(tt.ids, tt.edges)
			TransitiveReduction(g)
			for _, e := range tt.gone {
				if g.HasEdge(e[0], e[1]) {
					t.Errorf("edge %s → %s kept", e[0], e[1])
				}
			}
			if g.EdgeCount() != tt.wantLeft {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), tt.wantLeft)
			}
		})
	}
}
