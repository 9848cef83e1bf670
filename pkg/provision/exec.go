package provision

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// runCommand executes a setup command and folds its output into the error on
// failure.
func runCommand(ctx context.Context, dir string, extraEnv []string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %w (command: %s %s, output: %s)",
			ErrSetupFailed, err, name, strings.Join(args, " "), string(output))
	}
	return nil
}
