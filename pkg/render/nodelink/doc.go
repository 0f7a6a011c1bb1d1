// Package nodelink renders install sets as node-link diagrams.
//
// # Overview
//
// A resolved install set (see [resolver.BuildGraph]) or a gathered
// universe graph is drawn with Graphviz: one box per package labelled
// with its id and chosen version, one arrow per dependency. Nodes that
// share an install wave are pinned to the same rank so the drawing reads
// bottom-up in installation order.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Ranges: true, Waves: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Ranges: label each edge with the declared version range
//   - Waves: group nodes by [transform.InstallWaves]
//   - Layers: group nodes by the rows set by [transform.AssignLayers], for
//     gathered universes that are not install sets
//
// # Dependencies
//
// SVG rendering runs in process through [github.com/goccy/go-graphviz];
// no Graphviz installation is needed. The DOT text from [ToDOT] can also
// be fed to external tools.
//
// [resolver.BuildGraph]: github.com/matzehuels/depsolve/pkg/resolver.BuildGraph
// [transform.InstallWaves]: github.com/matzehuels/depsolve/pkg/dag/transform.InstallWaves
// [transform.AssignLayers]: github.com/matzehuels/depsolve/pkg/dag/transform.AssignLayers
package nodelink
