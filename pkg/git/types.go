package git

// CloneAtRevisionParams contains parameters for cloning a hook repository at a
// pinned revision.
type CloneAtRevisionParams struct {
	RepoURL    string
	Revision   string
	TargetPath string
}
