// Package fs provides file system operations for the hook-manager application.
package fs

import (
	"os"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=fs.go -destination=mocks/fs.gen.go -package=mocks

// FS interface provides file system operations for hook environments and caches.
type FS interface {
	// Exists reports whether a file or directory is present at path.
	Exists(path string) (bool, error)

	// IsDir reports whether path exists and is a directory.
	IsDir(path string) (bool, error)

	// ReadFile returns the full contents of the file at path.
	ReadFile(path string) ([]byte, error)

	// MkdirAll creates path along with any missing parents.
	MkdirAll(path string, perm os.FileMode) error

	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error

	// GetHomeDir returns the current user's home directory.
	GetHomeDir() (string, error)

	// WriteFileAtomic writes data to a file atomically using a temporary file and rename.
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error

	// FileLock acquires a file lock and returns an unlock function.
	FileLock(filename string) (func(), error)

	// Which finds the executable path for a command using the system's PATH.
	Which(command string) (string, error)

	// ExpandPath expands ~ to user's home directory.
	ExpandPath(path string) (string, error)

	// HashFile computes the BLAKE3 content hash of a file.
	HashFile(path string) (string, error)
}

type realFS struct {
	// No fields needed for basic file system operations
}

// NewFS creates a new FS instance.
func NewFS() FS {
	return &realFS{}
}
