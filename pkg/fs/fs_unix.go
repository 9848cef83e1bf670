//go:build !windows

package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// FileLock acquires a file lock and returns an unlock function.
// This implementation uses syscall.Flock which is available on Unix systems.
func (f *realFS) FileLock(filename string) (func(), error) {
	// Create lock file path
	lockPath := filename + ".lock"

	// Ensure parent directory exists before creating lock file
	lockDir := filepath.Dir(lockPath)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, err
	}

	// Create lock file
	lockFile, err := os.Create(lockPath)
	if err != nil {
		return nil, err
	}

	// Acquire file lock (blocking: concurrent engine invocations on the same
	// machine wait for each other rather than fail)
	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		if closeErr := lockFile.Close(); closeErr != nil {
			_ = closeErr
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFileLock, lockPath, err)
	}

	// Return unlock function
	unlock := func() {
		_ = syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)
		if closeErr := lockFile.Close(); closeErr != nil {
			_ = closeErr
		}
	}

	return unlock, nil
}
