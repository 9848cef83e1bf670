package provision

import (
	"context"
	"path/filepath"

	"github.com/lerenn/hook-manager/pkg/envcache"
)

// nodeProvisioner installs the hook repository and additional dependencies
// into an npm prefix inside the environment directory.
type nodeProvisioner struct{}

func (p *nodeProvisioner) setup(ctx context.Context, env *envcache.Environment, req envcache.Request) error {
	prefix := filepath.Join(env.Path, "node_env")

	if env.RepoPath != "" {
		if err := runCommand(ctx, env.Path, nil,
			"npm", "install", "--global", "--prefix", prefix, env.RepoPath); err != nil {
			return err
		}
	}
	if len(req.AdditionalDependencies) > 0 {
		args := append([]string{"install", "--global", "--prefix", prefix}, req.AdditionalDependencies...)
		if err := runCommand(ctx, env.Path, nil, "npm", args...); err != nil {
			return err
		}
	}

	env.BinPaths = []string{filepath.Join(prefix, "bin")}
	return nil
}
