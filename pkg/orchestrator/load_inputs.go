package orchestrator

import (
	"fmt"

	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/runner"
)

// loadInputs validates the configuration and flattens it into the ordered
// hook list for this run, applying the skip-list.
func (o *realOrchestrator) loadInputs(params RunParams) ([]*scheduledHook, error) {
	if params.Config == nil {
		return nil, ErrConfigMissing
	}
	if err := params.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	skip := make(map[string]struct{}, len(params.Skip))
	for _, id := range params.Skip {
		skip[id] = struct{}{}
	}

	var hooks []*scheduledHook
	index := 0
	for _, repo := range params.Config.Repos {
		for _, hook := range repo.Hooks {
			scheduled := &scheduledHook{
				index: index,
				repo:  repo,
				hook:  hook,
				request: envcache.Request{
					Language:               hook.Language,
					Source:                 repo.Repo,
					Revision:               repo.Rev,
					AdditionalDependencies: hook.AdditionalDependencies,
				},
			}
			if _, skipped := skip[hook.ID]; skipped {
				o.logger.Logf("Skipping hook %s (skip-list)", hook.ID)
				scheduled.result = &runner.Result{
					HookID:      hook.ID,
					Disposition: runner.DispositionSkipped,
				}
			}
			hooks = append(hooks, scheduled)
			index++
		}
	}
	return hooks, nil
}
