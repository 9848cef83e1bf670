package fs

import "os"

// ReadFile returns the full contents of the file at path.
func (f *realFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
