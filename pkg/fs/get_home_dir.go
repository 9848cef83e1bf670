package fs

import "os"

// GetHomeDir returns the current user's home directory, used to place the
// default cache root.
func (f *realFS) GetHomeDir() (string, error) {
	return os.UserHomeDir()
}
