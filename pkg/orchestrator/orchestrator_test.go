//go:build unit

package orchestrator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lerenn/hook-manager/pkg/config"
	configmocks "github.com/lerenn/hook-manager/pkg/config/mocks"
	"github.com/lerenn/hook-manager/pkg/envcache"
	cachemocks "github.com/lerenn/hook-manager/pkg/envcache/mocks"
	"github.com/lerenn/hook-manager/pkg/filematch"
	"github.com/lerenn/hook-manager/pkg/runner"
	runnermocks "github.com/lerenn/hook-manager/pkg/runner/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// localConfig builds a configuration with a single local repository.
func localConfig(hooks ...config.Hook) *config.Config {
	return &config.Config{
		Repos: []config.Repo{
			{Repo: config.LocalRepo, Hooks: hooks},
		},
	}
}

// anyEnvironmentCache builds a cache mock that resolves every request.
func anyEnvironmentCache(ctrl *gomock.Controller) *cachemocks.MockCache {
	cache := cachemocks.NewMockCache(ctrl)
	cache.EXPECT().
		Acquire(gomock.Any(), gomock.Any()).
		Return(&envcache.Environment{}, nil).
		AnyTimes()
	return cache
}

func TestOrchestrator_Run_ResultsInDeclarationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hook config.Hook, _ *envcache.Environment, _ []string) runner.Result {
			return runner.Result{HookID: hook.ID, Disposition: runner.DispositionPassed}
		}).
		Times(3)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
		Jobs:   4,
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "first", Entry: "first-tool", Language: config.LanguageSystem},
			config.Hook{ID: "second", Entry: "second-tool", Language: config.LanguageSystem},
			config.Hook{ID: "third", Entry: "third-tool", Language: config.LanguageSystem},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "first", result.Results[0].HookID)
	assert.Equal(t, "second", result.Results[1].HookID)
	assert.Equal(t, "third", result.Results[2].HookID)
	assert.Equal(t, StatusPassed, result.Overall)
	assert.Equal(t, 0, result.ExitCode())
	assert.NotEmpty(t, result.RunID)
}

func TestOrchestrator_Run_NoMatchingFilesSkipsHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The runner must never be invoked for a hook with an empty file set.
	mockRunner := runnermocks.NewMockRunner(ctrl)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "md-only", Entry: "md-tool", Language: config.LanguageSystem, Files: `\.md$`},
		),
		Files: filematch.ClassifyAll([]string{"a.py", "b.go"}),
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.Equal(t, runner.DispositionSkipped, result.Results[0].Disposition)
	assert.Equal(t, StatusPassed, result.Overall)
}

func TestOrchestrator_Run_AlwaysRunIgnoresEmptyMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Len(0)).
		Return(runner.Result{HookID: "always", Disposition: runner.DispositionPassed}).
		Times(1)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "always", Entry: "always-tool", Language: config.LanguageSystem, Files: `\.md$`, AlwaysRun: true},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
	})
	require.NoError(t, err)
	assert.Equal(t, runner.DispositionPassed, result.Results[0].Disposition)
}

func TestOrchestrator_Run_SkipListedHook(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hook config.Hook, _ *envcache.Environment, _ []string) runner.Result {
			return runner.Result{HookID: hook.ID, Disposition: runner.DispositionPassed}
		}).
		Times(1)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "skipped", Entry: "skipped-tool", Language: config.LanguageSystem},
			config.Hook{ID: "kept", Entry: "kept-tool", Language: config.LanguageSystem},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
		Skip:  []string{"skipped"},
	})
	require.NoError(t, err)

	assert.Equal(t, runner.DispositionSkipped, result.Results[0].Disposition)
	assert.Equal(t, runner.DispositionPassed, result.Results[1].Disposition)
}

func TestOrchestrator_Run_SerializedHooksNeverOverlap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// All three hooks share one environment key and one requires serial
	// execution, so none of them may overlap in time.
	var active, maxActive int32
	var mu sync.Mutex
	var order []string

	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hook config.Hook, _ *envcache.Environment, _ []string) runner.Result {
			current := atomic.AddInt32(&active, 1)
			for {
				observed := atomic.LoadInt32(&maxActive)
				if current <= observed || atomic.CompareAndSwapInt32(&maxActive, observed, current) {
					break
				}
			}
			mu.Lock()
			order = append(order, hook.ID)
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&active, -1)
			return runner.Result{HookID: hook.ID, Disposition: runner.DispositionPassed}
		}).
		Times(3)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
		Jobs:   4,
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "serial", Entry: "serial-tool", Language: config.LanguageSystem, RequireSerial: true},
			config.Hook{ID: "sharer-one", Entry: "one-tool", Language: config.LanguageSystem},
			config.Hook{ID: "sharer-two", Entry: "two-tool", Language: config.LanguageSystem},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPassed, result.Overall)
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
	assert.Equal(t, []string{"serial", "sharer-one", "sharer-two"}, order)
}

func TestOrchestrator_Run_RepeatedRunsAgree(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// With environments already resolved and hooks behaving the same way,
	// running twice over the same inputs must report the same outcome.
	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hook config.Hook, _ *envcache.Environment, _ []string) runner.Result {
			if hook.ID == "flaky-looking" {
				return runner.Result{HookID: hook.ID, Disposition: runner.DispositionFailed, ExitCode: 1}
			}
			return runner.Result{HookID: hook.ID, Disposition: runner.DispositionPassed}
		}).
		Times(4)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
		Jobs:   4,
	})

	params := RunParams{
		Config: localConfig(
			config.Hook{ID: "steady", Entry: "steady-tool", Language: config.LanguageSystem},
			config.Hook{ID: "flaky-looking", Entry: "flaky-tool", Language: config.LanguageSystem},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
	}

	first, err := orchestrator.Run(context.Background(), params)
	require.NoError(t, err)
	second, err := orchestrator.Run(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, first.Overall, second.Overall)
	assert.Equal(t, first.ExitCode(), second.ExitCode())
	require.Len(t, second.Results, len(first.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].HookID, second.Results[i].HookID)
		assert.Equal(t, first.Results[i].Disposition, second.Results[i].Disposition)
		assert.Equal(t, first.Results[i].ExitCode, second.Results[i].ExitCode)
	}
}

func TestOrchestrator_Run_FailFastSkipsRemainingHooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Serialization makes the dispatch order deterministic: the first hook
	// fails, the rest must be skipped without running.
	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(runner.Result{HookID: "first", Disposition: runner.DispositionFailed, ExitCode: 1}).
		Times(1)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "first", Entry: "first-tool", Language: config.LanguageSystem, RequireSerial: true},
			config.Hook{ID: "second", Entry: "second-tool", Language: config.LanguageSystem},
			config.Hook{ID: "third", Entry: "third-tool", Language: config.LanguageSystem},
		),
		Files:    filematch.ClassifyAll([]string{"a.py"}),
		FailFast: true,
	})
	require.NoError(t, err)

	assert.Equal(t, runner.DispositionFailed, result.Results[0].Disposition)
	assert.Equal(t, runner.DispositionSkipped, result.Results[1].Disposition)
	assert.Equal(t, runner.DispositionSkipped, result.Results[2].Disposition)
	assert.Equal(t, StatusFailed, result.Overall)
	assert.Equal(t, 1, result.ExitCode())
}

func TestOrchestrator_Run_EnvironmentFailureOnlyAffectsDependentHooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provisionErr := errors.New("pip install failed")
	cache := cachemocks.NewMockCache(ctrl)
	cache.EXPECT().
		Acquire(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req envcache.Request) (*envcache.Environment, error) {
			if req.Language == config.LanguagePython {
				return nil, provisionErr
			}
			return &envcache.Environment{}, nil
		}).
		AnyTimes()

	// Only the hook with a healthy environment runs.
	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(runner.Result{HookID: "healthy", Disposition: runner.DispositionPassed}).
		Times(1)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  cache,
		Runner: mockRunner,
		Config: configmocks.NewMockManager(ctrl),
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: localConfig(
			config.Hook{ID: "broken", Entry: "broken-tool", Language: config.LanguagePython},
			config.Hook{ID: "healthy", Entry: "healthy-tool", Language: config.LanguageSystem},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
	})
	require.NoError(t, err)

	assert.Equal(t, runner.DispositionErrored, result.Results[0].Disposition)
	assert.ErrorIs(t, result.Results[0].Err, ErrEnvironment)
	assert.Equal(t, runner.DispositionPassed, result.Results[1].Disposition)
	assert.Equal(t, StatusErrored, result.Overall)
	assert.Equal(t, 2, result.ExitCode())
}

func TestOrchestrator_Run_MergesManifestDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := cachemocks.NewMockCache(ctrl)
	cache.EXPECT().
		Acquire(gomock.Any(), gomock.Any()).
		Return(&envcache.Environment{RepoPath: "/cache/envs/e1/repo"}, nil).
		Times(1)

	manager := configmocks.NewMockManager(ctrl)
	manager.EXPECT().
		LoadManifest("/cache/envs/e1/repo").
		Return(config.Manifest{
			{ID: "fmt", Entry: "fmt-tool", Language: config.LanguagePython, Files: `\.py$`},
		}, nil).
		Times(1)

	mockRunner := runnermocks.NewMockRunner(ctrl)
	mockRunner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, hook config.Hook, _ *envcache.Environment, files []string) runner.Result {
			// The entry comes from the manifest, the args from the override.
			assert.Equal(t, "fmt-tool", hook.Entry)
			assert.Equal(t, []string{"--check"}, hook.Args)
			assert.Equal(t, []string{"a.py"}, files)
			return runner.Result{HookID: hook.ID, Disposition: runner.DispositionPassed}
		}).
		Times(1)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  cache,
		Runner: mockRunner,
		Config: manager,
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: &config.Config{
			Repos: []config.Repo{
				{
					Repo: "https://github.com/acme/hooks",
					Rev:  "v1.2.0",
					Hooks: []config.Hook{
						{ID: "fmt", Language: config.LanguagePython, Args: []string{"--check"}},
					},
				},
			},
		},
		Files: filematch.ClassifyAll([]string{"a.py", "b.md"}),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPassed, result.Overall)
}

func TestOrchestrator_Run_UnknownManifestHookAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := cachemocks.NewMockCache(ctrl)
	cache.EXPECT().
		Acquire(gomock.Any(), gomock.Any()).
		Return(&envcache.Environment{RepoPath: "/cache/envs/e1/repo"}, nil).
		Times(1)

	manager := configmocks.NewMockManager(ctrl)
	manager.EXPECT().
		LoadManifest("/cache/envs/e1/repo").
		Return(config.Manifest{{ID: "other", Entry: "other-tool"}}, nil).
		Times(1)

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  cache,
		Runner: runnermocks.NewMockRunner(ctrl),
		Config: manager,
	})

	result, err := orchestrator.Run(context.Background(), RunParams{
		Config: &config.Config{
			Repos: []config.Repo{
				{
					Repo: "https://github.com/acme/hooks",
					Rev:  "v1.2.0",
					Hooks: []config.Hook{
						{ID: "fmt", Language: config.LanguagePython},
					},
				},
			},
		},
		Files: filematch.ClassifyAll([]string{"a.py"}),
	})
	assert.ErrorIs(t, err, config.ErrUnknownHookID)
	assert.Nil(t, result)
}

func TestOrchestrator_Run_CancelledBeforeDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  anyEnvironmentCache(ctrl),
		Runner: runnermocks.NewMockRunner(ctrl),
		Config: configmocks.NewMockManager(ctrl),
	})

	result, err := orchestrator.Run(ctx, RunParams{
		Config: localConfig(
			config.Hook{ID: "never-runs", Entry: "never-tool", Language: config.LanguageSystem},
		),
		Files: filematch.ClassifyAll([]string{"a.py"}),
	})
	require.NoError(t, err)

	assert.Equal(t, runner.DispositionSkipped, result.Results[0].Disposition)
	assert.Equal(t, StatusCancelled, result.Overall)
	assert.Equal(t, 2, result.ExitCode())
}

func TestOrchestrator_Run_InvalidConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orchestrator := NewOrchestrator(NewOrchestratorParams{
		Cache:  cachemocks.NewMockCache(ctrl),
		Runner: runnermocks.NewMockRunner(ctrl),
		Config: configmocks.NewMockManager(ctrl),
	})

	t.Run("missing configuration", func(t *testing.T) {
		result, err := orchestrator.Run(context.Background(), RunParams{})
		assert.ErrorIs(t, err, ErrConfigMissing)
		assert.Nil(t, result)
	})

	t.Run("validation failure", func(t *testing.T) {
		result, err := orchestrator.Run(context.Background(), RunParams{
			Config: &config.Config{},
		})
		assert.ErrorIs(t, err, config.ErrNoRepositories)
		assert.Nil(t, result)
	})
}

func TestRunResult_ExitCode(t *testing.T) {
	assert.Equal(t, 0, (&RunResult{Overall: StatusPassed}).ExitCode())
	assert.Equal(t, 1, (&RunResult{Overall: StatusFailed}).ExitCode())
	assert.Equal(t, 2, (&RunResult{Overall: StatusErrored}).ExitCode())
	assert.Equal(t, 2, (&RunResult{Overall: StatusCancelled}).ExitCode())
}
