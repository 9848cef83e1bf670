package filematch

import "errors"

// Error definitions for filematch package.
var (
	ErrInvalidPattern = errors.New("invalid filter pattern")
)
