package orchestrator

import (
	"fmt"

	"github.com/lerenn/hook-manager/pkg/filematch"
	"github.com/lerenn/hook-manager/pkg/runner"
)

// computeFileSets evaluates each pending hook's file filter against the
// candidate set. Hooks with an empty matched set are skipped, not invoked.
func (o *realOrchestrator) computeFileSets(hooks []*scheduledHook, params RunParams) error {
	for _, hook := range hooks {
		if hook.result != nil {
			continue
		}

		files, err := filematch.Match(filematch.FilterSpec{
			Include:      hook.hook.Files,
			Exclude:      hook.hook.Exclude,
			Types:        hook.hook.Types,
			ExcludeTypes: hook.hook.ExcludeTypes,
		}, params.Files)
		if err != nil {
			return fmt.Errorf("%w: hook %s: %w", ErrFileMatch, hook.hook.ID, err)
		}

		if len(files) == 0 && !hook.hook.AlwaysRun {
			o.logger.Logf("Skipping hook %s (no matching files)", hook.hook.ID)
			hook.result = &runner.Result{
				HookID:      hook.hook.ID,
				Disposition: runner.DispositionSkipped,
			}
			continue
		}
		hook.files = files
	}
	return nil
}

// partition splits the pending hooks into a serial group and a parallel
// group, preserving declaration order within each. A hook is serialized when
// it requires serial execution or shares an environment with a hook that
// does: a serialized hook must never overlap in time with any other hook
// using its environment.
func (o *realOrchestrator) partition(hooks []*scheduledHook) (serial, parallel []*scheduledHook) {
	serialEnvs := make(map[string]struct{})
	for _, hook := range hooks {
		if hook.result == nil && hook.hook.RequireSerial {
			serialEnvs[hook.request.Key()] = struct{}{}
		}
	}

	for _, hook := range hooks {
		if hook.result != nil {
			continue
		}
		if _, shared := serialEnvs[hook.request.Key()]; shared || hook.hook.RequireSerial {
			hook.serial = true
			serial = append(serial, hook)
		} else {
			parallel = append(parallel, hook)
		}
	}
	return serial, parallel
}
