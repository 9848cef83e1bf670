package git

import (
	"fmt"
	"os/exec"
)

// ListStagedFiles lists files staged for the next commit (added, copied,
// modified or renamed; deletions are omitted).
func (g *realGit) ListStagedFiles(repoPath string) ([]string, error) {
	cmd := exec.Command("git", "diff", "--staged", "--name-only", "--diff-filter=ACMR", "-z")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git command failed: %w (command: git diff --staged --name-only)", err)
	}

	return splitNullTerminated(output), nil
}
