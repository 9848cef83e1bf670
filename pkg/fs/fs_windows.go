//go:build windows

package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLock acquires a file lock and returns an unlock function.
// On Windows, exclusive file creation is used as the locking primitive.
func (f *realFS) FileLock(filename string) (func(), error) {
	lockPath := filename + ".lock"

	lockDir := filepath.Dir(lockPath)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, err
	}

	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileLock, lockPath)
	}

	unlock := func() {
		if closeErr := lockFile.Close(); closeErr != nil {
			_ = closeErr
		}
		if removeErr := os.Remove(lockPath); removeErr != nil {
			_ = removeErr
		}
	}

	return unlock, nil
}
