//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

// gracefulCancel returns a cancel function sending SIGTERM so the hook
// process can clean up; cmd.WaitDelay kills it if it lingers.
func gracefulCancel(cmd *exec.Cmd) func() error {
	return func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
}
