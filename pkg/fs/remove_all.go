package fs

import "os"

// RemoveAll deletes path and everything below it. A missing path is not an
// error.
func (f *realFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
