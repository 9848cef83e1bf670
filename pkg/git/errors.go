// Package git provides Git command execution for file discovery and hook
// repository checkout.
package git

import "errors"

// Error definitions for git package.
var (
	ErrNotAGitRepository = errors.New("not a git repository")
	ErrRevisionNotFound  = errors.New("revision not found in repository")
)
