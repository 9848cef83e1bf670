package runner

// partition splits files into batches such that each invocation's command
// line stays under maxLen. Splitting is deterministic: files are consumed in
// the given (sorted) order and each batch takes as many as fit.
func partition(argv, files []string, maxLen int) [][]string {
	if len(files) == 0 {
		return [][]string{nil}
	}

	baseLen := 0
	for _, arg := range argv {
		baseLen += len(arg) + 1
	}

	var batches [][]string
	var current []string
	currentLen := baseLen
	for _, file := range files {
		argLen := len(file) + 1
		if len(current) > 0 && currentLen+argLen > maxLen {
			batches = append(batches, current)
			current = nil
			currentLen = baseLen
		}
		current = append(current, file)
		currentLen += argLen
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
