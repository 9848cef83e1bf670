package runner

import "time"

// Disposition is the per-hook outcome of a run.
type Disposition string

// Disposition values.
const (
	// DispositionPassed means the hook exited zero without modifying files.
	DispositionPassed Disposition = "passed"
	// DispositionFailed means the hook exited nonzero, or exited zero but
	// modified file contents on disk.
	DispositionFailed Disposition = "failed"
	// DispositionErrored means the hook process could not be launched or its
	// environment could not be provisioned.
	DispositionErrored Disposition = "errored"
	// DispositionSkipped means no candidate file matched the hook's filters,
	// so the hook was never invoked.
	DispositionSkipped Disposition = "skipped"
)

// Result is the terminal outcome of one hook for one run. It is never mutated
// after emission.
type Result struct {
	HookID        string
	Disposition   Disposition
	ExitCode      int
	Stdout        string
	Stderr        string
	FilesModified bool
	Duration      time.Duration
	Err           error
}
