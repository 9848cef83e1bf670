// Package main provides the command-line interface for the hook-manager
// application.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/git"
	"github.com/lerenn/hook-manager/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	quiet      bool
	verbose    bool
	configPath string
)

// newLogger returns the component logger for the current verbosity flags.
func newLogger() logger.Logger {
	if verbose && !quiet {
		return logger.NewDefaultLogger()
	}
	return logger.NewNoopLogger()
}

// resolveConfigPath resolves the configuration file path: the --config flag,
// or the default file at the root of the current repository.
func resolveConfigPath(gitInstance git.Git) (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	root, err := gitInstance.TopLevel(".")
	if err != nil {
		return "", err
	}
	return filepath.Join(root, config.DefaultConfigFileName), nil
}

// resolveCacheRoot resolves the environment cache directory: the HM_CACHE_DIR
// environment variable, or ~/.cache/hook-manager. Environment variables are
// read here, in the CLI layer, and passed down as explicit configuration.
func resolveCacheRoot(fsInstance fs.FS) (string, error) {
	if dir := os.Getenv("HM_CACHE_DIR"); dir != "" {
		return fsInstance.ExpandPath(dir)
	}
	homeDir, err := fsInstance.GetHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".cache", "hook-manager"), nil
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "hm",
		Short: "Hook Manager - hook orchestration engine",
		Long: `A CLI tool that runs externally-defined code-quality checks over a repository, ` +
			`provisioning one isolated, cached environment per check.`,
	}

	// Add global flags
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Specify a custom config file path")

	// Add subcommands
	rootCmd.AddCommand(
		createRunCmd(),
		createValidateCmd(),
		createAutoupdateCmd(),
		createCleanCmd(),
		createGCCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
