package runner

import "path/filepath"

// snapshot hashes the contents of the given files. Files that disappear are
// recorded as absent so their removal or appearance counts as a mutation.
func (r *realRunner) snapshot(files []string) (map[string]string, error) {
	hashes := make(map[string]string, len(files))
	for _, file := range files {
		path := r.resolvePath(file)
		exists, err := r.fs.Exists(path)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		hash, err := r.fs.HashFile(path)
		if err != nil {
			return nil, err
		}
		hashes[file] = hash
	}
	return hashes, nil
}

// resolvePath resolves a matched file path against the runner's work
// directory.
func (r *realRunner) resolvePath(file string) string {
	if r.workDir == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(r.workDir, file)
}

// snapshotsDiffer reports whether any file's content hash changed between two
// snapshots.
func snapshotsDiffer(before, after map[string]string) bool {
	if len(before) != len(after) {
		return true
	}
	for file, hash := range before {
		if after[file] != hash {
			return true
		}
	}
	return false
}
