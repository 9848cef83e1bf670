//go:build windows

package runner

import "os/exec"

// gracefulCancel returns a cancel function killing the hook process. Windows
// has no SIGTERM equivalent for arbitrary processes.
func gracefulCancel(cmd *exec.Cmd) func() error {
	return func() error {
		return cmd.Process.Kill()
	}
}
