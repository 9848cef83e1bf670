package provision

import (
	"context"
	"path/filepath"

	"github.com/lerenn/hook-manager/pkg/envcache"
)

// golangProvisioner builds the hook repository and additional dependencies
// into a GOBIN inside the environment directory.
type golangProvisioner struct{}

func (p *golangProvisioner) setup(ctx context.Context, env *envcache.Environment, req envcache.Request) error {
	gopath := filepath.Join(env.Path, "go_env")
	bin := filepath.Join(gopath, "bin")
	extraEnv := []string{"GOPATH=" + gopath, "GOBIN=" + bin}

	if env.RepoPath != "" {
		if err := runCommand(ctx, env.RepoPath, extraEnv, "go", "install", "./..."); err != nil {
			return err
		}
	}
	for _, dep := range req.AdditionalDependencies {
		if err := runCommand(ctx, env.Path, extraEnv, "go", "install", dep); err != nil {
			return err
		}
	}

	env.BinPaths = []string{bin}
	return nil
}
