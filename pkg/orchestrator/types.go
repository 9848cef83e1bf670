package orchestrator

import (
	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/filematch"
	"github.com/lerenn/hook-manager/pkg/runner"
)

// Status is the aggregate outcome of a full run.
type Status string

// Status values.
const (
	StatusPassed    Status = "passed"
	StatusFailed    Status = "failed"
	StatusErrored   Status = "errored"
	StatusCancelled Status = "cancelled"
)

// State tracks the orchestrator through a run.
type State string

// Orchestrator states.
const (
	StateIdle                  State = "idle"
	StateLoadingInputs         State = "loading-inputs"
	StateResolvingEnvironments State = "resolving-environments"
	StateScheduling            State = "scheduling"
	StateRunning               State = "running"
	StateAggregating           State = "aggregating"
	StateDone                  State = "done"
	StateCancelled             State = "cancelled"
	StateErrored               State = "errored"
)

// RunResult is the terminal output of the engine: one result per hook in
// declaration order, plus the aggregate status.
type RunResult struct {
	RunID   string
	Results []runner.Result
	Overall Status
}

// ExitCode maps the aggregate status to a process exit code: 0 passed,
// 1 failed, >1 errored or cancelled.
func (r *RunResult) ExitCode() int {
	switch r.Overall {
	case StatusPassed:
		return 0
	case StatusFailed:
		return 1
	default:
		return 2
	}
}

// RunParams contains the inputs for a full run, supplied by the external CLI
// layer. The engine itself never reads the process environment.
type RunParams struct {
	// Config is the already-parsed configuration document.
	Config *config.Config
	// Files is the candidate file set from the external discovery collaborator.
	Files []filematch.FileRecord
	// Skip lists hook ids to exclude from this run.
	Skip []string
	// FailFast stops dispatching new hooks after the first failure.
	FailFast bool
	// Jobs overrides the worker-pool size for this run.
	Jobs int
}

// scheduledHook is a hook selected for this run, carried through the stages.
type scheduledHook struct {
	// index is the declaration-order position across the whole configuration.
	index   int
	repo    config.Repo
	hook    config.Hook
	request envcache.Request
	env     *envcache.Environment
	files   []string
	serial  bool
	// result is pre-set for hooks decided before execution (skipped, errored).
	result *runner.Result
}
