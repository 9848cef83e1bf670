// Package runner executes a hook's command inside its resolved environment,
// capturing output, exit status and file-mutation side effects.
package runner

import "errors"

// Error definitions for runner package.
var (
	ErrEmptyEntry   = errors.New("hook has no entry to execute")
	ErrLaunchFailed = errors.New("hook process could not be launched")
)
