package config

import "errors"

// Error definitions for config package. All of these are configuration
// errors: they abort a run before any hook executes.
var (
	// Document errors.
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrConfigParse    = errors.New("failed to parse configuration file")

	// Structural errors.
	ErrNoRepositories    = errors.New("configuration declares no repositories")
	ErrNoHooks           = errors.New("configuration declares no hooks")
	ErrMissingRepoSource = errors.New("repository entry has no source")
	ErrMissingRevision   = errors.New("remote repository entry has no pinned revision")
	ErrMissingHookID     = errors.New("hook entry has no id")
	ErrDuplicateHookID   = errors.New("duplicate hook id")
	ErrMissingEntry      = errors.New("local hook has no entry")
	ErrMissingLanguage   = errors.New("hook has no language")
	ErrUnknownLanguage   = errors.New("unknown language runtime")
	ErrInvalidPattern    = errors.New("invalid filter pattern")

	// Manifest errors.
	ErrManifestNotFound = errors.New("hook manifest not found in repository")
	ErrManifestParse    = errors.New("failed to parse hook manifest")
	ErrUnknownHookID    = errors.New("hook id not present in repository manifest")
)
