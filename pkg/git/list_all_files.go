package git

import (
	"fmt"
	"os/exec"
)

// ListAllFiles lists every file tracked in the repository.
func (g *realGit) ListAllFiles(repoPath string) ([]string, error) {
	cmd := exec.Command("git", "ls-files", "-z")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git command failed: %w (command: git ls-files -z)", err)
	}

	return splitNullTerminated(output), nil
}
