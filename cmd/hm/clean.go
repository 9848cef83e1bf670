package main

import (
	"fmt"

	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/spf13/cobra"
)

func createCleanCmd() *cobra.Command {
	cleanCmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove every cached hook environment",
		Long: `Remove every provisioned environment from the cache. Environments are
re-provisioned on the next run.

Examples:
  hm clean`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fsInstance := fs.NewFS()
			cacheRoot, err := resolveCacheRoot(fsInstance)
			if err != nil {
				return err
			}

			cache, err := envcache.NewCache(cmd.Context(), envcache.NewCacheParams{
				FS:     fsInstance,
				Logger: newLogger(),
				Root:   cacheRoot,
			})
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			if err := cache.Clean(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clean cache: %w", err)
			}
			fmt.Println("Cache cleaned.")
			return nil
		},
	}

	return cleanCmd
}
