package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/internal/cli"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps its error to an exit code.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	addVerboseFlag(root, c)

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		cli.ReportError(err)
		return 1
	}
}

// addVerboseFlag registers -v and applies it before the root's own pre-run,
// which is where the config file is loaded.
func addVerboseFlag(root *cobra.Command, c *cli.CLI) {
	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if next == nil {
			return nil
		}
		return next(cmd, args)
	}
}
