// Package forge resolves hook-repository metadata from hosting services,
// used to update pinned revisions without cloning.
package forge

import "context"

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=forge.go -destination=mocks/forge.gen.go -package=mocks

// Forge interface defines the methods that all forge implementations must
// provide.
type Forge interface {
	// Name returns the name of the forge.
	Name() string

	// Supports reports whether the forge can resolve the repository URL.
	Supports(repoURL string) bool

	// LatestTag returns the most recently created tag of the repository.
	LatestTag(ctx context.Context, repoURL string) (string, error)
}
