package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Before any subcommand runs, the configuration file is loaded and the
// CLI's logger is attached to the command context, where commands retrieve
// it with loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Resolve package dependencies into a consistent install set",
		Long: `depsolve computes a single consistent set of package versions from a universe
of candidates and their declared version ranges, or explains why none exists.

Candidates come from a request file (TOML, YAML or JSON) or are gathered from
package feeds.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/depsolve/config.toml)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.gatherCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
