package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the tile cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With --scene only
// that scene's tiles are removed.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove cached tiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.cfg().cacheConfig()
			store, err := cache.Open(cc)
			if err != nil {
				return err
			}
			defer store.Close()

			if c.scenePath != "" {
				store = cache.NewScoped(store, "scene:"+c.sceneID()+":")
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}

			switch {
			case cc.Backend == cache.BackendNone:
				printInfo("Cache is disabled")
			case c.scenePath != "":
				printSuccess("Cleared cached tiles for %s", c.scenePath)
			default:
				printSuccess("Cleared %s cache", cc.Backend)
			}
			if cc.Backend == cache.BackendFile {
				printDetail("Directory: %s", cc.Dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := c.cfg().cacheConfig()
			switch cc.Backend {
			case cache.BackendFile:
				fmt.Fprintln(cmd.OutOrStdout(), cc.Dir)
			case cache.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), cc.RedisURL)
			default:
				printInfo("Cache is disabled")
			}
			return nil
		},
	}
}
