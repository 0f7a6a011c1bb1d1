package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/versioning"
)

func installSet(t *testing.T) *dag.DAG {
	t.Helper()
	rng, err := versioning.Parse("[1.0, 2.0)")
	if err != nil {
		t.Fatal(err)
	}
	web := resolver.NewCandidate("Web", semver.MustParse("2.0.0"),
		resolver.Dependency{ID: "log", Range: rng},
		resolver.Dependency{ID: "auth"})
	auth := resolver.NewCandidate("auth", semver.MustParse("0.3.0"), resolver.Dependency{ID: "Log", Range: rng})
	logc := resolver.NewCandidate("log", semver.MustParse("1.4.0"))

	g, err := resolver.BuildGraph(
		[]resolver.Identity{logc.Identity(), auth.Identity(), web.Identity()},
		[]resolver.Candidate{web, auth, logc},
	)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT_InstallSet(t *testing.T) {
	dot := ToDOT(installSet(t), Options{})

	for _, want := range []string{
		"digraph G",
		`"Web" [label="Web\n2.0.0"]`,
		`"log" [label="log\n1.4.0"]`,
		`"Web" -> "log";`,
		`"Web" -> "auth";`,
		`"auth" -> "log";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "rank=same") {
		t.Error("ToDOT() emitted waves without Options.Waves")
	}
	if strings.Contains(dot, "label=\"(") {
		t.Error("ToDOT() emitted edge ranges without Options.Ranges")
	}
}

func TestToDOT_RangesAndWaves(t *testing.T) {
	dot := ToDOT(installSet(t), Options{Ranges: true, Waves: true})

	for _, want := range []string{
		`"Web" -> "log" [label="(≥ 1.0.0 && < 2.0.0)"];`,
		`"Web" -> "auth";`,
		`{ rank=same; "log"; } // wave 0`,
		`{ rank=same; "auth"; } // wave 1`,
		`{ rank=same; "Web"; } // wave 2`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOT_Layers(t *testing.T) {
	g := installSet(t)
	transform.AssignLayers(g)

	dot := ToDOT(g, Options{Layers: true})
	for _, want := range []string{
		`{ rank=same; "Web"; } // row 0`,
		`{ rank=same; "auth"; } // row 1`,
		`{ rank=same; "log"; } // row 2`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}

	if dot := ToDOT(g, Options{Layers: true, Waves: true}); strings.Contains(dot, "// row") {
		t.Errorf("Waves should take precedence over Layers:\n%s", dot)
	}
}

func TestFmtAttrs(t *testing.T) {
	tests := []struct {
		name   string
		node   dag.Node
		label  string
		dashed bool
	}{
		{
			name:  "resolved",
			node:  dag.Node{ID: "log", Meta: dag.Metadata{"version": "1.0.0"}},
			label: `label="log\n1.0.0"`,
		},
		{
			name:  "gathered",
			node:  dag.Node{ID: "log", Meta: dag.Metadata{"versions": 3}},
			label: `label="log\n3 versions"`,
		},
		{
			name:  "single listing",
			node:  dag.Node{ID: "log", Meta: dag.Metadata{"versions": 1}},
			label: `label="log\n1 version"`,
		},
		{
			name:   "unversioned",
			node:   dag.Node{ID: "fmt"},
			label:  `label="fmt"`,
			dashed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := fmtAttrs(tt.node)
			if attrs[0] != tt.label {
				t.Errorf("fmtAttrs()[0] = %s, want %s", attrs[0], tt.label)
			}
			joined := strings.Join(attrs, " ")
			if got := strings.Contains(joined, "dashed"); got != tt.dashed {
				t.Errorf("dashed = %v, want %v (%v)", got, tt.dashed, attrs)
			}
		})
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(installSet(t), Options{Waves: true}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
