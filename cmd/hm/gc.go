package main

import (
	"fmt"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/git"
	"github.com/spf13/cobra"
)

func createGCCmd() *cobra.Command {
	gcCmd := &cobra.Command{
		Use:   "gc",
		Short: "Remove cached environments no longer referenced by the configuration",
		Long: `Remove provisioned environments whose key is not referenced by any hook in
the current configuration.

Examples:
  hm gc`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fsInstance := fs.NewFS()
			gitInstance := git.NewGit()

			cfgPath, err := resolveConfigPath(gitInstance)
			if err != nil {
				return err
			}
			cfg, err := config.NewManager(cfgPath).GetConfig()
			if err != nil {
				return err
			}

			// Every environment key the configuration still references.
			inUse := make(map[string]struct{})
			for _, repo := range cfg.Repos {
				for _, hook := range repo.Hooks {
					inUse[envcache.Request{
						Language:               hook.Language,
						Source:                 repo.Repo,
						Revision:               repo.Rev,
						AdditionalDependencies: hook.AdditionalDependencies,
					}.Key()] = struct{}{}
				}
			}

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

			if err := cache.GC(cmd.Context(), inUse); err != nil {
				return fmt.Errorf("failed to garbage-collect cache: %w", err)
			}
			fmt.Println("Cache garbage-collected.")
			return nil
		},
	}

	return gcCmd
}
