package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/filematch"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/git"
	"github.com/lerenn/hook-manager/pkg/orchestrator"
	"github.com/lerenn/hook-manager/pkg/provision"
	"github.com/lerenn/hook-manager/pkg/runner"
	"github.com/spf13/cobra"
)

func createRunCmd() *cobra.Command {
	var allFiles bool
	var files []string
	var skip []string
	var failFast bool
	var jobs int

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run hooks over the repository",
		Long: `Run every configured hook over the staged files (default), all tracked files,
or an explicit file list, and report one verdict.

Examples:
  hm run
  hm run --all-files
  hm run --files main.go --files pkg/app/app.go
  hm run --skip gofmt --fail-fast`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			log := newLogger()
			fsInstance := fs.NewFS()
			gitInstance := git.NewGit()

			cfgPath, err := resolveConfigPath(gitInstance)
			if err != nil {
				return exitError(err)
			}
			manager := config.NewManager(cfgPath)
			cfg, err := manager.GetConfig()
			if err != nil {
				return exitError(err)
			}

			repoRoot, err := gitInstance.TopLevel(".")
			if err != nil {
				return exitError(err)
			}

			paths, err := discoverFiles(gitInstance, repoRoot, allFiles, files)
			if err != nil {
				return exitError(err)
			}

			cacheRoot, err := resolveCacheRoot(fsInstance)
			if err != nil {
				return exitError(err)
			}
			cache, err := envcache.NewCache(ctx, envcache.NewCacheParams{
				FS:     fsInstance,
				Logger: log,
				Provisioner: provision.NewRegistry(provision.NewRegistryParams{
					FS:     fsInstance,
					Git:    gitInstance,
					Logger: log,
				}),
				Root: cacheRoot,
			})
			if err != nil {
				return exitError(err)
			}
			defer func() { _ = cache.Close() }()

			engine := orchestrator.NewOrchestrator(orchestrator.NewOrchestratorParams{
				Cache: cache,
				Runner: runner.NewRunner(runner.NewRunnerParams{
					FS:      fsInstance,
					Logger:  log,
					WorkDir: repoRoot,
				}),
				Config: manager,
				Logger: log,
			})

			result, err := engine.Run(ctx, orchestrator.RunParams{
				Config:   cfg,
				Files:    filematch.ClassifyAll(paths),
				Skip:     skipList(skip),
				FailFast: failFast,
				Jobs:     jobs,
			})
			if err != nil {
				return exitError(err)
			}

			printResults(result)

			// os.Exit skips deferred calls: release the cache and signal
			// handler explicitly before exiting.
			_ = cache.Close()
			stop()
			os.Exit(result.ExitCode())
			return nil
		},
	}

	runCmd.Flags().BoolVarP(&allFiles, "all-files", "a", false, "Run over all tracked files instead of staged files")
	runCmd.Flags().StringSliceVar(&files, "files", nil, "Run over an explicit list of files")
	runCmd.Flags().StringSliceVar(&skip, "skip", nil, "Hook ids to skip")
	runCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop dispatching hooks after the first failure")
	runCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of hooks to run concurrently (default: available parallelism)")

	return runCmd
}

// discoverFiles produces the candidate file set for the run.
func discoverFiles(gitInstance git.Git, repoRoot string, allFiles bool, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if allFiles {
		return gitInstance.ListAllFiles(repoRoot)
	}
	return gitInstance.ListStagedFiles(repoRoot)
}

// skipList combines the --skip flag with the HM_SKIP environment variable.
func skipList(flagSkip []string) []string {
	skip := append([]string(nil), flagSkip...)
	for _, id := range strings.Split(os.Getenv("HM_SKIP"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			skip = append(skip, id)
		}
	}
	return skip
}

// printResults reports every hook's disposition, not just the first failure.
func printResults(result *orchestrator.RunResult) {
	for _, res := range result.Results {
		fmt.Printf("%s%s%s\n", res.HookID, dots(res.HookID), title(string(res.Disposition)))

		if res.Disposition == runner.DispositionFailed || res.Disposition == runner.DispositionErrored {
			if res.FilesModified {
				fmt.Println("- files were modified by this hook")
			}
			if res.Err != nil {
				fmt.Printf("- %v\n", res.Err)
			}
			printOutput(res.Stdout)
			printOutput(res.Stderr)
		}
	}
}

// title capitalizes a disposition for result output.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// dots pads a hook id for aligned result output.
func dots(id string) string {
	const width = 60
	if len(id) >= width {
		return ""
	}
	return strings.Repeat(".", width-len(id))
}

// printOutput prints captured hook output, if any.
func printOutput(output string) {
	if strings.TrimSpace(output) == "" {
		return
	}
	fmt.Println(strings.TrimRight(output, "\n"))
}

// exitError prints the error and exits with the errored status code.
func exitError(err error) error {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
	return nil
}
