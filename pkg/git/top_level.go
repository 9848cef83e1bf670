package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// TopLevel returns the root directory of the repository containing path.
func (g *realGit) TopLevel(path string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = path

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotAGitRepository, path)
	}

	return strings.TrimSpace(string(output)), nil
}
