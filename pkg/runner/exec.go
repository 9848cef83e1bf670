package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lerenn/hook-manager/pkg/envcache"
)

// invoke executes one command line inside the environment and captures its
// output and exit status.
func (r *realRunner) invoke(ctx context.Context, env *envcache.Environment, argv []string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.workDir
	cmd.Env = environFor(env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// On cancellation, ask the process to terminate and kill it after the
	// grace period.
	cmd.Cancel = gracefulCancel(cmd)
	cmd.WaitDelay = r.termGrace

	r.logger.Logf("Executing: %s", strings.Join(argv, " "))
	err := cmd.Run()

	out := capOutput(stdout.Bytes())
	errOut := capOutput(stderr.Bytes())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			// Clean nonzero exit.
			return out, errOut, exitErr.ExitCode(), nil
		}
		if ctx.Err() != nil {
			return out, errOut, 0, ctx.Err()
		}
		return out, errOut, 0, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}
	return out, errOut, 0, nil
}

// environFor builds the child process environment with the hook environment's
// bin directories prepended to PATH.
func environFor(env *envcache.Environment) []string {
	if env == nil || len(env.BinPaths) == 0 {
		return os.Environ()
	}

	prefix := strings.Join(env.BinPaths, string(os.PathListSeparator))
	environ := os.Environ()
	for i, kv := range environ {
		if strings.HasPrefix(kv, "PATH=") {
			environ[i] = "PATH=" + prefix + string(os.PathListSeparator) + strings.TrimPrefix(kv, "PATH=")
			return environ
		}
	}
	return append(environ, "PATH="+prefix)
}

// capOutput bounds captured process output.
func capOutput(output []byte) string {
	if len(output) > maxCapturedOutput {
		return string(output[:maxCapturedOutput])
	}
	return string(output)
}
