package git

import (
	"fmt"
	"os/exec"
	"strings"
)

// CloneAtRevision clones a repository and checks out a pinned revision.
func (g *realGit) CloneAtRevision(params CloneAtRevisionParams) error {
	cloneArgs := []string{"clone", "--quiet", params.RepoURL, params.TargetPath}

	cmd := exec.Command("git", cloneArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone failed: %w (command: git %s, output: %s)",
			err, strings.Join(cloneArgs, " "), string(output))
	}

	checkoutArgs := []string{"checkout", "--quiet", params.Revision}
	cmd = exec.Command("git", checkoutArgs...)
	cmd.Dir = params.TargetPath
	output, err = cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s (output: %s)", ErrRevisionNotFound, params.Revision, string(output))
	}

	return nil
}
