package fs

import "errors"

// Error definitions for fs package.
var (
	// File lock errors.
	ErrFileLock = errors.New("lock")

	// Path resolution errors.
	ErrPathResolution = errors.New("path resolution failed")
)
