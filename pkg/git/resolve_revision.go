package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// ResolveRevision resolves a symbolic revision to a full commit hash in an
// already-cloned repository.
func (g *realGit) ResolveRevision(repoPath, revision string) (string, error) {
	cmd := exec.Command("git", "rev-parse", revision)
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrRevisionNotFound, revision)
	}

	return strings.TrimSpace(string(output)), nil
}
