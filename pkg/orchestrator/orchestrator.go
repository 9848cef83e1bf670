package orchestrator

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/logger"
	"github.com/lerenn/hook-manager/pkg/runner"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=orchestrator.go -destination=mocks/orchestrator.gen.go -package=mocks

// Orchestrator interface drives full hook runs.
type Orchestrator interface {
	// Run executes every selected hook and returns the aggregate result. A
	// non-nil error means a configuration problem aborted the run before any
	// hook executed.
	Run(ctx context.Context, params RunParams) (*RunResult, error)
	// SetLogger sets the logger for this orchestrator instance.
	SetLogger(logger logger.Logger)
}

// NewOrchestratorParams contains parameters for creating a new Orchestrator
// instance.
type NewOrchestratorParams struct {
	Cache  envcache.Cache
	Runner runner.Runner
	Config config.Manager
	Logger logger.Logger
	// Jobs is the default worker-pool size. Zero means available parallelism.
	Jobs int
}

type realOrchestrator struct {
	cache  envcache.Cache
	runner runner.Runner
	config config.Manager
	logger logger.Logger
	jobs   int

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates a new Orchestrator instance.
func NewOrchestrator(params NewOrchestratorParams) Orchestrator {
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	if params.Jobs <= 0 {
		params.Jobs = runtime.NumCPU()
	}

	return &realOrchestrator{
		cache:  params.Cache,
		runner: params.Runner,
		config: params.Config,
		logger: params.Logger,
		jobs:   params.Jobs,
		state:  StateIdle,
	}
}

// SetLogger sets the logger for this orchestrator instance.
func (o *realOrchestrator) SetLogger(logger logger.Logger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logger = logger
}

// setState records a state transition.
func (o *realOrchestrator) setState(state State) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
	o.logger.Logf("Orchestrator state: %s", state)
}

// State returns the current orchestrator state.
func (o *realOrchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Run executes every selected hook and returns the aggregate result.
func (o *realOrchestrator) Run(ctx context.Context, params RunParams) (*RunResult, error) {
	o.setState(StateLoadingInputs)
	hooks, err := o.loadInputs(params)
	if err != nil {
		o.setState(StateErrored)
		return nil, err
	}

	o.setState(StateResolvingEnvironments)
	if err := o.resolveEnvironments(ctx, hooks); err != nil {
		o.setState(StateErrored)
		return nil, err
	}

	o.setState(StateScheduling)
	if err := o.computeFileSets(hooks, params); err != nil {
		o.setState(StateErrored)
		return nil, err
	}
	serial, parallel := o.partition(hooks)

	o.setState(StateRunning)
	o.runHooks(ctx, runHooksParams{
		serial:   serial,
		parallel: parallel,
		failFast: params.FailFast || params.Config.FailFast,
		jobs:     o.jobCount(params),
	})

	o.setState(StateAggregating)
	result := o.aggregate(ctx, hooks)

	if result.Overall == StatusCancelled {
		o.setState(StateCancelled)
	} else {
		o.setState(StateDone)
	}
	return result, nil
}

// jobCount resolves the worker-pool size for this run.
func (o *realOrchestrator) jobCount(params RunParams) int {
	if params.Jobs > 0 {
		return params.Jobs
	}
	return o.jobs
}

// aggregate assembles the final RunResult in declaration order. The worst
// status across all hooks determines the overall status; cancellation
// dominates while preserving completed results.
func (o *realOrchestrator) aggregate(ctx context.Context, hooks []*scheduledHook) *RunResult {
	result := &RunResult{
		RunID:   uuid.New().String(),
		Results: make([]runner.Result, 0, len(hooks)),
		Overall: StatusPassed,
	}

	for _, hook := range hooks {
		res := runner.Result{HookID: hook.hook.ID, Disposition: runner.DispositionSkipped}
		if hook.result != nil {
			res = *hook.result
		}
		result.Results = append(result.Results, res)

		switch res.Disposition {
		case runner.DispositionErrored:
			result.Overall = StatusErrored
		case runner.DispositionFailed:
			if result.Overall != StatusErrored {
				result.Overall = StatusFailed
			}
		}
	}

	if ctx.Err() != nil {
		result.Overall = StatusCancelled
	}
	return result
}
