package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/dag"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
	"github.com/matzehuels/depsolve/pkg/render/nodelink"
	"github.com/matzehuels/depsolve/pkg/universe"
)

type gatherOptions struct {
	feedFlags
	output   string
	format   string
	maxDepth int
	maxNodes int
}

// gatherCommand creates the gather command.
func (c *CLI) gatherCommand() *cobra.Command {
	var opts gatherOptions

	cmd := &cobra.Command{
		Use:   "gather <package>...",
		Short: "Crawl feeds and save the reachable universe",
		Long: `Gather every version of every package reachable from the given packages
and write them as a request file. The file lists the packages as required, so
it can be passed straight to "depsolve resolve", or edited first.

With --format dot or svg (or an -o file ending in .dot or .svg) the
package-level dependency graph is drawn instead.`,
		Example: `  depsolve gather web --feed https://feed.example.com/v3 -o universe.toml
  depsolve gather web auth --format json
  depsolve gather web -o universe.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGather(cmd.Context(), cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.feeds, "feed", nil, "feed URL (repeatable, defaults to the configured feeds)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the feed response cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached feed responses")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file; the extension picks the format")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(universe.FormatTOML), "format when writing to stdout: toml, yaml, json, or dot and svg for the package graph")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "maximum dependency depth (default from config)")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", 0, "maximum packages to fetch (default from config)")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion([]string{
		string(universe.FormatTOML), string(universe.FormatYAML), string(universe.FormatJSON), formatDOT, formatSVG,
	}))

	return cmd
}

func (c *CLI) runGather(ctx context.Context, stdout io.Writer, roots []string, opts gatherOptions) error {
	logger := loggerFromContext(ctx)

	if opts.maxDepth > 0 {
		c.Config.Gather.MaxDepth = opts.maxDepth
	}
	if opts.maxNodes > 0 {
		c.Config.Gather.MaxNodes = opts.maxNodes
	}

	walker, closeFn, err := c.newWalker(ctx, opts.feedFlags)
	if err != nil {
		return err
	}
	defer closeFn()

	prog := newProgress(logger)
	u, err := c.gather(ctx, walker, roots)
	if err != nil {
		return err
	}
	prog.done("Gathered universe", "packages", u.Graph.NodeCount(), "candidates", len(u.Candidates))

	req := &universe.Request{
		Required: roots,
		Packages: universe.FromCandidates(u.Candidates),
	}
	packages, edges := u.Graph.NodeCount(), u.Graph.EdgeCount()

	format := opts.format
	if opts.output != "" {
		format = strings.TrimPrefix(filepath.Ext(opts.output), ".")
	}

	var data []byte
	switch format {
	case formatDOT, formatSVG:
		if data, err = renderUniverse(ctx, u.Graph, format); err != nil {
			return err
		}
	default:
		var buf bytes.Buffer
		if err := universe.Encode(&buf, universe.Format(format), req); err != nil {
			return err
		}
		data = buf.Bytes()
	}
	if err := writeOutput(stdout, opts.output, data); err != nil || opts.output == "" {
		return err
	}

	printSuccess("Gathered %d packages", packages)
	printFile(opts.output)
	printStats("versions", len(req.Packages), "edges", edges, "leaves", len(u.Graph.Sinks()))
	if format != formatDOT && format != formatSVG {
		printNewline()
		printNextStep("Resolve", appName+" resolve "+opts.output)
	}
	return nil
}

// renderUniverse draws the package-level graph of a gathered universe,
// one rank per dependency depth. Circular references are cut first.
func renderUniverse(ctx context.Context, g *dag.DAG, format string) ([]byte, error) {
	logger := loggerFromContext(ctx)
	if cut := transform.BreakCycles(g); len(cut) > 0 {
		logger.Warn("universe has circular references", "dropped_edges", len(cut))
		for _, e := range cut {
			logger.Debug("dropped edge", "from", e.From, "to", e.To)
		}
	}
	transform.AssignLayers(g)
	logger.Debug("layered universe", "rows", g.RowCount(), "depth", g.MaxRow())

	dot := nodelink.ToDOT(g, nodelink.Options{Layers: true})
	if format == formatSVG {
		return nodelink.RenderSVG(ctx, dot)
	}
	return []byte(dot), nil
}
