package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Ranges labels edges with the declared version range, when known.
	Ranges bool
	// Waves pins every install wave to its own rank.
	Waves bool
	// Layers pins nodes sharing a row (see transform.AssignLayers) to one
	// rank. Ignored when Waves is set.
	Layers bool
}

// ToDOT converts a dependency graph to Graphviz DOT source. Node labels
// show the id and, when present, the "version" metadata; edges point from
// a package to its dependency.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10, fontcolor=\"#555555\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(*n), ", "))
	}

	if opts.Waves {
		buf.WriteString("\n")
		for i, wave := range transform.InstallWaves(g) {
			quoted := make([]string, len(wave))
			for j, id := range wave {
				quoted[j] = strconv.Quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; } // wave %d\n", strings.Join(quoted, "; "), i)
		}
	} else if opts.Layers {
		buf.WriteString("\n")
		for _, row := range g.RowIDs() {
			var quoted []string
			for _, n := range g.NodesInRow(row) {
				quoted = append(quoted, strconv.Quote(n.ID))
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; } // row %d\n", strings.Join(quoted, "; "), row)
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if r, ok := e.Meta["range"].(string); ok && opts.Ranges && r != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, r)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node) string {
	if v, ok := n.Meta["version"]; ok {
		return fmt.Sprintf("%s\n%v", n.ID, v)
	}
	if c, ok := n.Meta["versions"].(int); ok {
		if c == 1 {
			return n.ID + "\n1 version"
		}
		return fmt.Sprintf("%s\n%d versions", n.ID, c)
	}
	return n.ID
}

// fmtAttrs greys out nodes that were never listed.
func fmtAttrs(n dag.Node) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n))}
	_, pinned := n.Meta["version"]
	_, listed := n.Meta["versions"]
	if !pinned && !listed {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox drops Graphviz's pt-based width and height so the SVG
// scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
