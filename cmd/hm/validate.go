package main

import (
	"fmt"
	"strings"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/git"
	"github.com/spf13/cobra"
)

func createValidateCmd() *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the hook configuration",
		Long: `Validate the hook configuration document without running anything. Local
system hooks additionally get their executables checked against PATH.

Examples:
  hm validate
  hm validate -c custom-hooks.yaml`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfgPath, err := resolveConfigPath(git.NewGit())
			if err != nil {
				return err
			}

			cfg, err := config.NewManager(cfgPath).GetConfig()
			if err != nil {
				return err
			}

			hooks := 0
			fsInstance := fs.NewFS()
			for _, repo := range cfg.Repos {
				for _, hook := range repo.Hooks {
					hooks++
					warnMissingExecutable(fsInstance, repo, hook)
				}
			}
			fmt.Printf("Configuration valid: %d repositories, %d hooks\n", len(cfg.Repos), hooks)
			return nil
		},
	}

	return validateCmd
}

// warnMissingExecutable reports local system hooks whose command is not on
// PATH. This is a warning, not an error: the executable may appear before the
// next run.
func warnMissingExecutable(fsInstance fs.FS, repo config.Repo, hook config.Hook) {
	if !repo.IsLocal() || hook.Language != config.LanguageSystem {
		return
	}
	entry := strings.Fields(hook.Entry)
	if len(entry) == 0 {
		return
	}
	if _, err := fsInstance.Which(entry[0]); err != nil {
		fmt.Printf("warning: hook %s: executable %q not found on PATH\n", hook.ID, entry[0])
	}
}
