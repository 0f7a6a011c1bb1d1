package cli

import (
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// completionCommand prints a shell completion script. It skips config
// loading so a broken config file cannot break shell startup.
func (c *CLI) completionCommand() *cobra.Command {
	shells := make([]string, 0, len(completionShells))
	for name := range completionShells {
		shells = append(shells, name)
	}
	slices.Sort(shells)

	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for the given shell.

  source <(depsolve completion bash)
  depsolve completion zsh > "${fpath[1]}/_depsolve"
  depsolve completion fish > ~/.config/fish/completions/depsolve.fish
  depsolve completion powershell | Out-String | Invoke-Expression

Completion covers subcommands, flags, --behavior policies and --format values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRunE:     func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
