package fs

import "os"

// Exists reports whether a file or directory is present at path. Stat errors
// other than non-existence are returned to the caller.
func (f *realFS) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
