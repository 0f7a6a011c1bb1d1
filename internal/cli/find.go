package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/versioning"
)

// findCommand creates the find command.
func (c *CLI) findCommand() *cobra.Command {
	var ff feedFlags

	cmd := &cobra.Command{
		Use:   "find <package> [range]",
		Short: "Find the best version of a package across feeds",
		Long: `Ask every feed for the package and print the best version in range.

The best version is the lowest one satisfying the range, preferring an exact
match on its lower bound. Listed versions win over unlisted ones. All feeds
are consulted, so a slower feed with a better match still wins.`,
		Example: `  depsolve find log "[1.0, 2.0)" --feed https://feed.example.com/v3
  depsolve find log 1.*`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rng string
			if len(args) == 2 {
				rng = args[1]
			}
			return c.runFind(cmd.Context(), cmd.OutOrStdout(), args[0], rng, ff)
		},
	}

	cmd.Flags().StringSliceVar(&ff.feeds, "feed", nil, "feed URL (repeatable, defaults to the configured feeds)")
	cmd.Flags().BoolVar(&ff.noCache, "no-cache", false, "disable the feed response cache")
	cmd.Flags().BoolVar(&ff.refresh, "refresh", false, "ignore cached feed responses")

	return cmd
}

func (c *CLI) runFind(ctx context.Context, stdout io.Writer, id, rangeStr string, ff feedFlags) error {
	rng, err := versioning.Parse(rangeStr)
	if err != nil {
		return err
	}

	walker, closeFn, err := c.newWalker(ctx, ff)
	if err != nil {
		return err
	}
	defer closeFn()

	m, err := walker.FindBest(ctx, id, rng)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s %s\n", m.Candidate.ID, m.Candidate.Version)
	printDetail("from %s", m.Source)
	if !m.Candidate.Listed {
		printWarning("%s %s is unlisted", m.Candidate.ID, m.Candidate.Version)
	}
	return nil
}
