package git

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=git.go -destination=mocks/git.gen.go -package=mocks

// Git interface provides Git command execution capabilities.
type Git interface {
	// TopLevel returns the root directory of the repository containing path.
	TopLevel(path string) (string, error)

	// ListAllFiles lists every file tracked in the repository.
	ListAllFiles(repoPath string) ([]string, error)

	// ListStagedFiles lists files staged for the next commit (added, copied,
	// modified or renamed; deletions are omitted).
	ListStagedFiles(repoPath string) ([]string, error)

	// CloneAtRevision clones a repository and checks out a pinned revision.
	CloneAtRevision(params CloneAtRevisionParams) error

	// ResolveRevision resolves a symbolic revision to a full commit hash in an
	// already-cloned repository.
	ResolveRevision(repoPath, revision string) (string, error)
}

type realGit struct {
	// No fields needed for basic Git operations
}

// NewGit creates a new Git instance.
func NewGit() Git {
	return &realGit{}
}
