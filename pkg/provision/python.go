package provision

import (
	"context"
	"path/filepath"

	"github.com/lerenn/hook-manager/pkg/envcache"
)

// pythonProvisioner creates a virtualenv inside the environment directory and
// installs the hook repository plus any additional dependencies into it.
type pythonProvisioner struct{}

func (p *pythonProvisioner) setup(ctx context.Context, env *envcache.Environment, req envcache.Request) error {
	venv := filepath.Join(env.Path, "py_env")
	if err := runCommand(ctx, env.Path, nil, "python3", "-m", "venv", venv); err != nil {
		return err
	}

	bin := filepath.Join(venv, "bin")
	pip := filepath.Join(bin, "pip")

	if env.RepoPath != "" {
		if err := runCommand(ctx, env.RepoPath, nil, pip, "install", "."); err != nil {
			return err
		}
	}
	if len(req.AdditionalDependencies) > 0 {
		args := append([]string{"install"}, req.AdditionalDependencies...)
		if err := runCommand(ctx, env.Path, nil, pip, args...); err != nil {
			return err
		}
	}

	env.BinPaths = []string{bin}
	return nil
}
