package git

import "strings"

// splitNullTerminated splits `git ... -z` output into individual paths.
func splitNullTerminated(output []byte) []string {
	parts := strings.Split(string(output), "\x00")
	files := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}
