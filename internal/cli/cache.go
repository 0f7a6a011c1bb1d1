package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depsolve/pkg/cache"
	"github.com/matzehuels/depsolve/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the feed response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached feed response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			backend := c.Config.Cache.Backend

			store, err := c.openCache(ctx, false)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s cache", backend)
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				printWarning("The %s cache holds nothing to clear", backend)
				return nil
			}
			if err := clearer.Clear(ctx); err != nil {
				return fmt.Errorf("clear %s cache: %w", backend, err)
			}

			printSuccess("Cleared %s cache", backend)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail("Directory: %s", fc.Dir())
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Cache
			var where string
			switch cfg.Backend {
			case cache.BackendFile:
				where = cfg.Dir
			case cache.BackendRedis:
				where = cfg.RedisURL
			case cache.BackendMongo:
				where = cfg.MongoURI
			default:
				where = cfg.Backend
			}
			fmt.Fprintln(cmd.OutOrStdout(), where)
			return nil
		},
	}
}
