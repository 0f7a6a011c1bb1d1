package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/internal/server"
	"github.com/matzehuels/depsolve/pkg/dag/transform"
	"github.com/matzehuels/depsolve/pkg/errors"
	"github.com/matzehuels/depsolve/pkg/render/nodelink"
	"github.com/matzehuels/depsolve/pkg/resolver"
	"github.com/matzehuels/depsolve/pkg/universe"
)

// Output formats of the resolve command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatDOT   = "dot"
	formatSVG   = "svg"
)

var resolveFormats = []string{formatTable, formatJSON, formatDOT, formatSVG}

type resolveOptions struct {
	feedFlags
	behavior    string
	format      string
	output      string
	interactive bool
	reduce      bool
}

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var opts resolveOptions

	cmd := &cobra.Command{
		Use:   "resolve <request-file>",
		Short: "Compute the install set for a request file",
		Long: `Resolve the packages required by a request file.

The request names the required packages and may carry its own candidate
universe. With --feed (or feeds listed in the request or config file) the
universe is gathered from package feeds instead.

Packages are printed in installation order: every package comes after the
packages it depends on. Packages sharing a wave can be installed together.`,
		Example: `  depsolve resolve request.toml
  depsolve resolve request.yaml --behavior highest-minor --format json
  depsolve resolve request.toml --feed https://feed.example.com/v3 --format svg -o deps.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runResolve(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.feeds, "feed", nil, "feed URL to gather candidates from (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the feed response cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached feed responses")
	cmd.Flags().StringVar(&opts.behavior, "behavior", "", "dependency version policy: "+strings.Join(resolver.BehaviorNames(), ", "))
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: "+strings.Join(resolveFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to file instead of stdout")
	cmd.Flags().BoolVar(&opts.reduce, "reduce", false, "drop edges implied by longer paths (dot, svg)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "browse the result interactively")

	_ = cmd.RegisterFlagCompletionFunc("behavior", fixedCompletion(resolver.BehaviorNames()))
	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(resolveFormats))

	return cmd
}

func (c *CLI) runResolve(ctx context.Context, stdout io.Writer, path string, opts resolveOptions) error {
	logger := loggerFromContext(ctx)

	if !slices.Contains(resolveFormats, opts.format) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %s)", opts.format, strings.Join(resolveFormats, ", "))
	}

	req, err := universe.Load(path)
	if err != nil {
		return err
	}
	switch {
	case opts.behavior != "":
		req.Behavior = opts.behavior
	case req.Behavior == "":
		req.Behavior = c.Config.Behavior
	}

	feeds := slices.Concat(opts.feeds, req.Feeds)
	var gathered []resolver.Candidate
	if len(feeds) > 0 || (len(req.Packages) == 0 && len(c.Config.Feeds) > 0) {
		ff := opts.feedFlags
		ff.feeds = feeds
		walker, closeFn, err := c.newWalker(ctx, ff)
		if err != nil {
			return err
		}
		defer closeFn()

		u, err := c.gather(ctx, walker, slices.Concat(req.Required, req.Targets))
		if err != nil {
			return err
		}
		gathered = u.Candidates
		logger.Debug("gathered universe", "packages", u.Graph.NodeCount(), "candidates", len(u.Candidates))
	}

	prog := newProgress(logger)
	res, err := universe.Solve(ctx, c.newResolver(), req, gathered)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages", len(res.Packages)), "waves", len(res.Waves))

	if opts.interactive {
		return runBrowser(ctx, res)
	}

	if opts.reduce {
		transform.TransitiveReduction(res.Graph)
	}
	data, err := formatResult(ctx, res, opts.format)
	if err != nil {
		return err
	}
	if err := writeOutput(stdout, opts.output, data); err != nil || opts.output == "" {
		return err
	}

	printSuccess("Resolved %s", StyleHighlight.Render(strings.Join(req.Required, ", ")))
	printFile(opts.output)
	printStats("packages", len(res.Packages), "edges", res.Graph.EdgeCount(), "waves", len(res.Waves))
	if opts.format != formatSVG {
		printNewline()
		printNextStep("Render", fmt.Sprintf("%s resolve %s --format svg -o deps.svg", appName, path))
	}
	return nil
}

// formatResult renders res in one of the resolve formats.
func formatResult(ctx context.Context, res *universe.Result, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		resp := server.ResolveResponse{Packages: make([]server.Package, 0, len(res.Packages)), Waves: res.Waves}
		for _, id := range res.Packages {
			resp.Packages = append(resp.Packages, server.Package{ID: id.ID, Version: id.Version.String()})
		}
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatDOT:
		return []byte(nodelink.ToDOT(res.Graph, nodelink.Options{Ranges: true, Waves: true})), nil
	case formatSVG:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(res.Graph, nodelink.Options{Ranges: true, Waves: true}))
	default:
		return []byte(renderTable(res) + "\n"), nil
	}
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// waveIndex maps package ids to their install wave.
func waveIndex(res *universe.Result) map[string]int {
	idx := make(map[string]int, len(res.Packages))
	for i, wave := range res.Waves {
		for _, id := range wave {
			idx[id] = i
		}
	}
	return idx
}

// renderTable lays out the install set as a bordered table.
func renderTable(res *universe.Result) string {
	waves := waveIndex(res)
	rows := make([][]string, 0, len(res.Packages))
	for i, id := range res.Packages {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			id.ID,
			id.Version.String(),
			strconv.Itoa(waves[id.ID]),
			strconv.Itoa(res.Graph.OutDegree(id.ID)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Package", "Version", "Wave", "Deps").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 1:
				return base.Foreground(colorCyan)
			case col == 0 || col == 3 || col == 4:
				return base.Foreground(colorGray)
			default:
				return base
			}
		}).
		Render()
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
