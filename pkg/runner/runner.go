package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/logger"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=runner.go -destination=mocks/runner.gen.go -package=mocks

const (
	// defaultMaxArgLength bounds the command-line length of one invocation;
	// longer file lists are split into batches.
	defaultMaxArgLength = 64 * 1024

	// defaultTerminationGrace is the time a cancelled hook process gets after
	// SIGTERM before it is killed.
	defaultTerminationGrace = 5 * time.Second

	// maxCapturedOutput caps the stdout/stderr captured per invocation.
	maxCapturedOutput = 256 * 1024
)

// Runner interface executes one hook's command inside its resolved
// environment.
type Runner interface {
	// Run executes the hook over the matched files and returns its result.
	Run(ctx context.Context, hook config.Hook, env *envcache.Environment, files []string) Result
	// SetLogger sets the logger for this runner instance.
	SetLogger(logger logger.Logger)
}

// NewRunnerParams contains parameters for creating a new Runner instance.
type NewRunnerParams struct {
	FS     fs.FS
	Logger logger.Logger
	// WorkDir is the directory hook processes run in, typically the root of
	// the repository under check. Empty means the current directory.
	WorkDir string
	// MaxArgLength overrides the platform command-line length limit.
	MaxArgLength int
	// TerminationGrace overrides the SIGTERM-to-kill grace period.
	TerminationGrace time.Duration
}

type realRunner struct {
	fs           fs.FS
	logger       logger.Logger
	workDir      string
	maxArgLength int
	termGrace    time.Duration
}

// NewRunner creates a new Runner instance.
func NewRunner(params NewRunnerParams) Runner {
	if params.FS == nil {
		params.FS = fs.NewFS()
	}
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	if params.MaxArgLength <= 0 {
		params.MaxArgLength = defaultMaxArgLength
	}
	if params.TerminationGrace <= 0 {
		params.TerminationGrace = defaultTerminationGrace
	}

	return &realRunner{
		fs:           params.FS,
		logger:       params.Logger,
		workDir:      params.WorkDir,
		maxArgLength: params.MaxArgLength,
		termGrace:    params.TerminationGrace,
	}
}

// SetLogger sets the logger for this runner instance.
func (r *realRunner) SetLogger(logger logger.Logger) {
	r.logger = logger
}

// Run executes the hook over the matched files and returns its result.
func (r *realRunner) Run(ctx context.Context, hook config.Hook, env *envcache.Environment, files []string) Result {
	start := time.Now()

	// The fail language never launches a process: it reports the entry text
	// and the offending files.
	if hook.Language == config.LanguageFail {
		return Result{
			HookID:      hook.ID,
			Disposition: DispositionFailed,
			ExitCode:    1,
			Stdout:      hook.Entry + "\n\n" + strings.Join(files, "\n") + "\n",
			Duration:    time.Since(start),
		}
	}

	argv, err := r.buildArgv(hook, env)
	if err != nil {
		return Result{
			HookID:      hook.ID,
			Disposition: DispositionErrored,
			Err:         err,
			Duration:    time.Since(start),
		}
	}

	// Invocations are split deterministically by path sort order.
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	before, err := r.snapshot(sorted)
	if err != nil {
		return Result{
			HookID:      hook.ID,
			Disposition: DispositionErrored,
			Err:         err,
			Duration:    time.Since(start),
		}
	}

	batches := r.batches(hook, argv, sorted)

	result := Result{HookID: hook.ID, Disposition: DispositionPassed}
	for _, batch := range batches {
		out, errOut, exitCode, invokeErr := r.invoke(ctx, env, append(argv, batch...))
		result.Stdout += out
		result.Stderr += errOut
		if invokeErr != nil {
			result.Disposition = DispositionErrored
			result.Err = invokeErr
			result.Duration = time.Since(start)
			return result
		}
		// Worst exit code across batches wins.
		if exitCode > result.ExitCode {
			result.ExitCode = exitCode
		}
	}

	after, err := r.snapshot(sorted)
	if err != nil {
		result.Disposition = DispositionErrored
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.FilesModified = snapshotsDiffer(before, after)

	// Mutating hooks count as failures even on a zero exit, so the caller is
	// forced to re-stage and re-run.
	if result.ExitCode != 0 || result.FilesModified {
		result.Disposition = DispositionFailed
	}
	result.Duration = time.Since(start)
	return result
}

// buildArgv resolves the hook entry and fixed arguments into the base command
// line shared by all batches.
func (r *realRunner) buildArgv(hook config.Hook, env *envcache.Environment) ([]string, error) {
	entry := strings.Fields(hook.Entry)
	if len(entry) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyEntry, hook.ID)
	}

	// Script hooks run a file shipped inside the hook repository.
	if hook.Language == config.LanguageScript && env != nil && env.RepoPath != "" {
		entry[0] = filepath.Join(env.RepoPath, entry[0])
	}

	return append(entry, hook.Args...), nil
}

// batches computes the per-invocation file lists for the hook.
func (r *realRunner) batches(hook config.Hook, argv, files []string) [][]string {
	if !hook.ShouldPassFilenames() {
		// One invocation, no file arguments: matching only decided whether to
		// invoke at all.
		return [][]string{nil}
	}
	if hook.RequireSerial {
		// Exactly one invocation processes all files together.
		return [][]string{files}
	}
	return partition(argv, files, r.maxArgLength)
}
