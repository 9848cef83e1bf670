//go:build unit

package runner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestRunner(workDir string, params NewRunnerParams) Runner {
	params.WorkDir = workDir
	return NewRunner(params)
}

func TestRunner_Run_Passes(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	script := writeScript(t, workDir, "ok.sh", `echo checked "$@"`)

	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "ok", Entry: script, Language: config.LanguageSystem},
		nil,
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionPassed, result.Disposition)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Stdout, "checked a.txt")
	assert.False(t, result.FilesModified)
	assert.NoError(t, result.Err)
}

func TestRunner_Run_NonzeroExitFails(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	script := writeScript(t, workDir, "bad.sh", "echo problem >&2\nexit 3")

	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "bad", Entry: script, Language: config.LanguageSystem},
		nil,
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionFailed, result.Disposition)
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.Stderr, "problem")
}

func TestRunner_Run_MutationFailsDespiteZeroExit(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "original")
	script := writeScript(t, workDir, "mutate.sh", `for f in "$@"; do echo fixed > "$f"; done`)

	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "mutate", Entry: script, Language: config.LanguageSystem},
		nil,
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionFailed, result.Disposition)
	assert.Equal(t, 0, result.ExitCode)
	assert.True(t, result.FilesModified)
}

func TestRunner_Run_BatchesLongFileLists(t *testing.T) {
	workDir := t.TempDir()
	files := []string{"c.txt", "a.txt", "b.txt", "d.txt"}
	for _, f := range files {
		writeFile(t, workDir, f, f)
	}
	// Each invocation appends its argument list to a log.
	script := writeScript(t, workDir, "log.sh", `echo "$@" >> invocations.log`)

	// A tight limit forces one file per invocation.
	result := newTestRunner(workDir, NewRunnerParams{MaxArgLength: len(script) + 12}).Run(
		context.Background(),
		config.Hook{ID: "log", Entry: script, Language: config.LanguageSystem},
		nil,
		files,
	)
	require.Equal(t, DispositionPassed, result.Disposition)

	logged, err := os.ReadFile(filepath.Join(workDir, "invocations.log"))
	require.NoError(t, err)

	// Files are consumed in sorted order, one batch per invocation.
	lines := strings.Split(strings.TrimSpace(string(logged)), "\n")
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt", "d.txt"}, lines)
}

func TestRunner_Run_WorstExitCodeAcrossBatches(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	writeFile(t, workDir, "b.txt", "b")
	// The lower nonzero code comes first in sort order; the final exit code
	// must still be the worst one across all batches.
	script := writeScript(t, workDir, "grade.sh", `case "$1" in
a.txt) exit 1 ;;
b.txt) exit 4 ;;
esac`)

	// A tight limit forces one file per invocation.
	result := newTestRunner(workDir, NewRunnerParams{MaxArgLength: len(script) + 12}).Run(
		context.Background(),
		config.Hook{ID: "grade", Entry: script, Language: config.LanguageSystem},
		nil,
		[]string{"b.txt", "a.txt"},
	)

	assert.Equal(t, DispositionFailed, result.Disposition)
	assert.Equal(t, 4, result.ExitCode)
}

func TestRunner_Run_RequireSerialSingleInvocation(t *testing.T) {
	workDir := t.TempDir()
	files := []string{"b.txt", "a.txt"}
	for _, f := range files {
		writeFile(t, workDir, f, f)
	}
	script := writeScript(t, workDir, "count.sh", `echo "$#"`)

	// Even with a tight limit, require_serial keeps everything in one batch.
	result := newTestRunner(workDir, NewRunnerParams{MaxArgLength: 1}).Run(
		context.Background(),
		config.Hook{ID: "count", Entry: script, Language: config.LanguageSystem, RequireSerial: true},
		nil,
		files,
	)

	assert.Equal(t, DispositionPassed, result.Disposition)
	assert.Equal(t, "2\n", result.Stdout)
}

func TestRunner_Run_NoPassFilenames(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	script := writeScript(t, workDir, "count.sh", `echo "$#"`)

	no := false
	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "count", Entry: script, Language: config.LanguageSystem, PassFilenames: &no},
		nil,
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionPassed, result.Disposition)
	assert.Equal(t, "0\n", result.Stdout)
}

func TestRunner_Run_FailLanguage(t *testing.T) {
	result := NewRunner(NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "no-commit", Entry: "Do not commit these files", Language: config.LanguageFail},
		nil,
		[]string{"secrets.env"},
	)

	assert.Equal(t, DispositionFailed, result.Disposition)
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stdout, "Do not commit these files")
	assert.Contains(t, result.Stdout, "secrets.env")
}

func TestRunner_Run_EmptyEntryErrors(t *testing.T) {
	result := NewRunner(NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "broken", Language: config.LanguageSystem},
		nil,
		nil,
	)

	assert.Equal(t, DispositionErrored, result.Disposition)
	assert.ErrorIs(t, result.Err, ErrEmptyEntry)
}

func TestRunner_Run_MissingExecutableErrors(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")

	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "ghost", Entry: "definitely-not-a-command", Language: config.LanguageSystem},
		nil,
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionErrored, result.Disposition)
	assert.ErrorIs(t, result.Err, ErrLaunchFailed)
}

func TestRunner_Run_CancelledContextErrors(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	script := writeScript(t, workDir, "slow.sh", "sleep 30")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result := newTestRunner(workDir, NewRunnerParams{TerminationGrace: time.Second}).Run(
		ctx,
		config.Hook{ID: "slow", Entry: script, Language: config.LanguageSystem},
		nil,
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionErrored, result.Disposition)
	assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
}

func TestRunner_Run_EnvironmentBinPathsOnPATH(t *testing.T) {
	workDir := t.TempDir()
	binDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	writeScript(t, binDir, "hook-tool", "echo from-env")

	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "tool", Entry: "hook-tool", Language: config.LanguageSystem},
		&envcache.Environment{BinPaths: []string{binDir}},
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionPassed, result.Disposition)
	assert.Equal(t, "from-env\n", result.Stdout)
}

func TestRunner_Run_ScriptEntryResolvesAgainstHookRepo(t *testing.T) {
	workDir := t.TempDir()
	repoDir := t.TempDir()
	writeFile(t, workDir, "a.txt", "a")
	writeScript(t, repoDir, "check.sh", "echo from-repo")

	result := newTestRunner(workDir, NewRunnerParams{}).Run(
		context.Background(),
		config.Hook{ID: "check", Entry: "check.sh", Language: config.LanguageScript},
		&envcache.Environment{RepoPath: repoDir},
		[]string{"a.txt"},
	)

	assert.Equal(t, DispositionPassed, result.Disposition)
	assert.Equal(t, "from-repo\n", result.Stdout)
}

func TestPartition(t *testing.T) {
	argv := []string{"cmd"}

	t.Run("no files yields one empty batch", func(t *testing.T) {
		assert.Equal(t, [][]string{nil}, partition(argv, nil, 100))
	})

	t.Run("everything fits in one batch", func(t *testing.T) {
		batches := partition(argv, []string{"a", "b", "c"}, 100)
		assert.Equal(t, [][]string{{"a", "b", "c"}}, batches)
	})

	t.Run("tight limit splits deterministically", func(t *testing.T) {
		// argv contributes 4, each file 2: two files per batch fit under 9.
		batches := partition(argv, []string{"a", "b", "c", "d", "e"}, 9)
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, batches)
	})

	t.Run("oversized file still gets its own batch", func(t *testing.T) {
		batches := partition(argv, []string{"averylongfilename"}, 5)
		assert.Equal(t, [][]string{{"averylongfilename"}}, batches)
	})
}

func TestSnapshotsDiffer(t *testing.T) {
	assert.False(t, snapshotsDiffer(
		map[string]string{"a": "h1"},
		map[string]string{"a": "h1"},
	))
	assert.True(t, snapshotsDiffer(
		map[string]string{"a": "h1"},
		map[string]string{"a": "h2"},
	))
	assert.True(t, snapshotsDiffer(
		map[string]string{"a": "h1"},
		map[string]string{},
	))
}
