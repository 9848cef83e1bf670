package forge

import (
	"context"
	"fmt"

	"github.com/lerenn/hook-manager/pkg/config"
	"github.com/lerenn/hook-manager/pkg/logger"
)

// Change records one repository revision bump performed by an update.
type Change struct {
	Repo   string
	OldRev string
	NewRev string
}

// Updater bumps the pinned revision of every remote hook repository in the
// configuration document to the latest tag published on its forge.
type Updater struct {
	forge  Forge
	config config.Manager
	logger logger.Logger
}

// NewUpdaterParams contains parameters for creating a new Updater instance.
type NewUpdaterParams struct {
	Forge  Forge
	Config config.Manager
	Logger logger.Logger
}

// NewUpdater creates a new Updater instance.
func NewUpdater(params NewUpdaterParams) *Updater {
	if params.Logger == nil {
		params.Logger = logger.NewNoopLogger()
	}
	return &Updater{
		forge:  params.Forge,
		config: params.Config,
		logger: params.Logger,
	}
}

// Update rewrites the configuration with each remote repository pinned to its
// latest tag and returns the performed changes. Repositories not hosted on
// the forge are left untouched.
func (u *Updater) Update(ctx context.Context) ([]Change, error) {
	cfg, err := u.config.GetConfig()
	if err != nil {
		return nil, err
	}

	var changes []Change
	for i, repo := range cfg.Repos {
		if repo.IsLocal() {
			continue
		}
		if !u.forge.Supports(repo.Repo) {
			u.logger.Logf("Skipping %s: not hosted on %s", repo.Repo, u.forge.Name())
			continue
		}

		latest, err := u.forge.LatestTag(ctx, repo.Repo)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve latest tag of %s: %w", repo.Repo, err)
		}
		if latest == repo.Rev {
			continue
		}

		changes = append(changes, Change{Repo: repo.Repo, OldRev: repo.Rev, NewRev: latest})
		cfg.Repos[i].Rev = latest
	}

	if len(changes) == 0 {
		return nil, nil
	}
	if err := u.config.SaveConfig(cfg); err != nil {
		return nil, err
	}
	return changes, nil
}
