// Package provision installs hook toolchains into cache-owned environment
// directories, one provisioner variant per supported language runtime.
package provision

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/envcache"
	"github.com/lerenn/hook-manager/pkg/fs"
	"github.com/lerenn/hook-manager/pkg/git"
	"github.com/lerenn/hook-manager/pkg/logger"
)

// runtimeProvisioner installs one language runtime and the requested
// dependencies into an environment directory.
type runtimeProvisioner interface {
	setup(ctx context.Context, env *envcache.Environment, req envcache.Request) error
}

// Registry dispatches provisioning requests to the runtime provisioner
// matching the requested language. It implements envcache.Provisioner.
type Registry struct {
	fs       fs.FS
	git      git.Git
	logger   logger.Logger
	runtimes map[string]runtimeProvisioner
}

// NewRegistryParams contains parameters for creating a new Registry instance.
type NewRegistryParams struct {
	FS     fs.FS
	Git    git.Git
	Logger logger.Logger
}

// NewRegistry creates a new Registry with every supported runtime registered.
func NewRegistry(params NewRegistryParams) *Registry {
	if params.FS == nil {
		params.FS = fs.NewFS()
	}
	if params.Git == nil {
		params.Git = git.NewGit()
	}
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}

	return &Registry{
		fs:     params.FS,
		git:    params.Git,
		logger: params.Logger,
		runtimes: map[string]runtimeProvisioner{
			config.LanguagePython: &pythonProvisioner{},
			config.LanguageNode:   &nodeProvisioner{},
			config.LanguageGolang: &golangProvisioner{},
			config.LanguageSystem: &noopProvisioner{},
			config.LanguageScript: &noopProvisioner{},
			config.LanguageFail:   &noopProvisioner{},
		},
	}
}

// SetLogger sets the logger for this registry instance.
func (r *Registry) SetLogger(logger logger.Logger) {
	r.logger = logger
}

// Provision installs the requested runtime and dependencies into dir and
// returns the resulting environment.
func (r *Registry) Provision(ctx context.Context, req envcache.Request, dir string) (*envcache.Environment, error) {
	runtime, ok := r.runtimes[req.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuntime, req.Language)
	}

	env := &envcache.Environment{
		Language: req.Language,
		Source:   req.Source,
		Revision: req.Revision,
		Path:     dir,
	}

	// Local hooks have no repository to clone; their commands come straight
	// from the configuration document.
	if req.Source != config.LocalRepo {
		repoPath := filepath.Join(dir, "repo")
		r.logger.Logf("Cloning %s at %s", req.Source, req.Revision)
		if err := r.git.CloneAtRevision(git.CloneAtRevisionParams{
			RepoURL:    req.Source,
			Revision:   req.Revision,
			TargetPath: repoPath,
		}); err != nil {
			return nil, fmt.Errorf("failed to clone hook repository: %w", err)
		}
		env.RepoPath = repoPath

		if commit, err := r.git.ResolveRevision(repoPath, req.Revision); err == nil {
			r.logger.Logf("Pinned %s resolves to commit %s", req.Revision, commit)
		}
	}

	if err := runtime.setup(ctx, env, req); err != nil {
		return nil, err
	}
	return env, nil
}

// noopProvisioner serves runtimes that need no installed toolchain (system,
// script, fail). The repository clone, when present, is all they need.
type noopProvisioner struct{}

func (p *noopProvisioner) setup(_ context.Context, _ *envcache.Environment, _ envcache.Request) error {
	return nil
}
