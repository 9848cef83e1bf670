package fs

import "os"

// MkdirAll creates path along with any missing parents.
func (f *realFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}
