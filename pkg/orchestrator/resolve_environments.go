package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/runner"
)

// resolveEnvironments acquires one environment per distinct key referenced by
// the selected hooks. A provisioning failure downgrades the hooks depending
// on that key to errored without aborting resolution for unrelated keys.
// Remote hooks are then completed with their manifest defaults.
func (o *realOrchestrator) resolveEnvironments(ctx context.Context, hooks []*scheduledHook) error {
	type outcome struct {
		env *envcache.Environment
		err error
	}

	// Deduplicate keys, then acquire concurrently. The cache single-flights
	// concurrent acquisitions of the same key anyway; deduplication here just
	// avoids pointless goroutines.
	requests := make(map[string]envcache.Request)
	for _, hook := range hooks {
		if hook.result != nil {
			continue
		}
		requests[hook.request.Key()] = hook.request
	}

	outcomes := make(map[string]*outcome, len(requests))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for key, req := range requests {
		wg.Add(1)
		go func(key string, req envcache.Request) {
			defer wg.Done()
			env, err := o.cache.Acquire(ctx, req)
			mu.Lock()
			outcomes[key] = &outcome{env: env, err: err}
			mu.Unlock()
		}(key, req)
	}
	wg.Wait()

	manifests := make(map[string]config.Manifest)
	for _, hook := range hooks {
		if hook.result != nil {
			continue
		}

		out := outcomes[hook.request.Key()]
		if out.err != nil {
			o.logger.Logf("Environment for hook %s unavailable: %v", hook.hook.ID, out.err)
			hook.result = &runner.Result{
				HookID:      hook.hook.ID,
				Disposition: runner.DispositionErrored,
				Err:         fmt.Errorf("%w: %w", ErrEnvironment, out.err),
			}
			continue
		}
		hook.env = out.env

		if err := o.mergeManifest(hook, manifests); err != nil {
			return err
		}
	}
	return nil
}

// mergeManifest layers the configuration-side hook override on top of the
// manifest default shipped in the hook repository. Local hooks have no
// manifest; their definitions come straight from the configuration.
func (o *realOrchestrator) mergeManifest(hook *scheduledHook, manifests map[string]config.Manifest) error {
	if hook.repo.IsLocal() {
		return nil
	}

	manifest, ok := manifests[hook.env.RepoPath]
	if !ok {
		loaded, err := o.config.LoadManifest(hook.env.RepoPath)
		if err != nil {
			return fmt.Errorf("repository %s: %w", hook.repo.Repo, err)
		}
		manifests[hook.env.RepoPath] = loaded
		manifest = loaded
	}

	base, found := manifest.ByID(hook.hook.ID)
	if !found {
		return fmt.Errorf("%w: %s (repository %s)", config.ErrUnknownHookID, hook.hook.ID, hook.repo.Repo)
	}
	hook.hook = config.MergeHook(base, hook.hook)

	if hook.hook.Entry == "" && hook.hook.Language != config.LanguageFail {
		return fmt.Errorf("%w: %s", ErrMissingRunEntry, hook.hook.ID)
	}
	return nil
}
