package forge

import "errors"

// Error definitions for forge package.
var (
	ErrUnsupportedRepoURL = errors.New("repository URL is not hosted on a supported forge")
	ErrNoTags             = errors.New("repository has no tags")
	ErrAPIRequest         = errors.New("forge API request failed")
)
