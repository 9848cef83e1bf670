package main

import (
	"fmt"
	"os"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/forge"
	"github.com/lerenn/hook-manager/pkg/git"
	"github.com/spf13/cobra"
)

func createAutoupdateCmd() *cobra.Command {
	autoupdateCmd := &cobra.Command{
		Use:   "autoupdate",
		Short: "Update pinned hook repository revisions to their latest tags",
		Long: `Update the rev of every remote hook repository in the configuration to the
latest tag published on its forge, and rewrite the configuration file.

Examples:
  hm autoupdate`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := resolveConfigPath(git.NewGit())
			if err != nil {
				return err
			}

			updater := forge.NewUpdater(forge.NewUpdaterParams{
				Forge:  forge.NewGitHub(os.Getenv("GITHUB_TOKEN")),
				Config: config.NewManager(cfgPath),
				Logger: newLogger(),
			})

			changes, err := updater.Update(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to update revisions: %w", err)
			}

			if len(changes) == 0 {
				fmt.Println("Everything up to date.")
				return nil
			}
			for _, change := range changes {
				fmt.Printf("%s: %s -> %s\n", change.Repo, change.OldRev, change.NewRev)
			}
			return nil
		},
	}

	return autoupdateCmd
}
