package envcache

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/zeebo/blake3"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=types.go -destination=mocks/provisioner.gen.go -package=mocks

// Request identifies the environment a hook needs. Two hooks with identical
// requests share one provisioned environment even if their ids differ.
type Request struct {
	Language               string
	Source                 string
	Revision               string
	AdditionalDependencies []string
}

// Key derives the environment identity from the request. Changing any field,
// including the pinned revision, yields a different key and therefore a fresh
// environment.
func (r Request) Key() string {
	hasher := blake3.New()
	for _, part := range append([]string{r.Language, r.Source, r.Revision}, r.AdditionalDependencies...) {
		_, _ = hasher.WriteString(part)
		_, _ = hasher.WriteString("\x00")
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// Environment is an isolated, provisioned runtime in which a hook's command
// executes. Environments are immutable once provisioned.
type Environment struct {
	Key      string
	Language string
	Source   string
	Revision string
	// Path is the environment directory under the cache root.
	Path string
	// RepoPath is the hook repository clone inside Path. Empty for local hooks.
	RepoPath string
	// BinPaths are directories to prepend to PATH when running hook commands.
	BinPaths []string
}

// Provisioner performs the installation mechanics for one environment. The
// cache invokes it exactly once per key; implementations live in the
// provision package, one variant per supported language runtime.
type Provisioner interface {
	// Provision installs the requested runtime and dependencies into dir and
	// returns the resulting environment.
	Provision(ctx context.Context, req Request, dir string) (*Environment, error)
}

// joinList serializes a string list for the persisted index.
func joinList(items []string) string {
	return strings.Join(items, "\n")
}

// splitList deserializes a string list from the persisted index.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
