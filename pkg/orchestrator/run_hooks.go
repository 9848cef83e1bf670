package orchestrator

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lerenn/hook-manager/pkg/runner"
)

// runHooksParams contains the scheduling decisions for the running stage.
type runHooksParams struct {
	serial   []*scheduledHook
	parallel []*scheduledHook
	failFast bool
	jobs     int
}

// indexedResult carries one hook's result back to the collector. Results
// travel over a channel; running hooks share no mutable state.
type indexedResult struct {
	hook   *scheduledHook
	result runner.Result
}

// runHooks dispatches the parallel group to a bounded worker pool and the
// serial group to a single lane executing in declaration order. Completion
// order is irrelevant: results are stored by hook, and the aggregation stage
// reads them back in declaration order.
func (o *realOrchestrator) runHooks(ctx context.Context, params runHooksParams) {
	total := len(params.serial) + len(params.parallel)
	if total == 0 {
		return
	}

	var stop atomic.Bool
	results := make(chan indexedResult, total)

	var wg sync.WaitGroup

	// Serial lane: strict declaration order, one at a time.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, hook := range params.serial {
			results <- indexedResult{hook: hook, result: o.runOne(ctx, hook, &stop, params.failFast)}
		}
	}()

	// Parallel lanes: bounded worker pool over the declaration-ordered queue.
	queue := make(chan *scheduledHook)
	workers := params.jobs
	if workers > len(params.parallel) {
		workers = len(params.parallel)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for hook := range queue {
				results <- indexedResult{hook: hook, result: o.runOne(ctx, hook, &stop, params.failFast)}
			}
		}()
	}
	for _, hook := range params.parallel {
		queue <- hook
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		result := res.result
		res.hook.result = &result
	}
}

// runOne executes a single hook unless the run is being wound down, in which
// case the hook is recorded as skipped. Completed results are preserved
// either way.
func (o *realOrchestrator) runOne(ctx context.Context, hook *scheduledHook, stop *atomic.Bool, failFast bool) runner.Result {
	if stop.Load() || ctx.Err() != nil {
		return runner.Result{HookID: hook.hook.ID, Disposition: runner.DispositionSkipped}
	}

	result := o.runner.Run(ctx, hook.hook, hook.env, hook.files)

	if failFast && (result.Disposition == runner.DispositionFailed || result.Disposition == runner.DispositionErrored) {
		stop.Store(true)
	}
	return result
}
