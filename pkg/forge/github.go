package forge

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
)

const (
	// GitHubName is the name identifier for GitHub forge.
	GitHubName = "github"
	// GitHubDomain is the GitHub domain for URL validation.
	GitHubDomain = "github.com"

	apiTimeout = 10 * time.Second
)

// GitHub represents the GitHub forge implementation.
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a new GitHub forge instance. The token is passed in
// explicitly by the CLI layer; an empty token means unauthenticated access.
func NewGitHub(token string) *GitHub {
	var client *github.Client
	if token != "" {
		client = github.NewTokenClient(context.Background(), token)
	} else {
		client = github.NewClient(nil)
	}

	return &GitHub{client: client}
}

// Name returns the name of the forge.
func (g *GitHub) Name() string {
	return GitHubName
}

// Supports reports whether the forge can resolve the repository URL.
func (g *GitHub) Supports(repoURL string) bool {
	_, _, err := parseGitHubURL(repoURL)
	return err == nil
}

// LatestTag returns the most recently created tag of the repository.
func (g *GitHub) LatestTag(ctx context.Context, repoURL string) (string, error) {
	owner, repo, err := parseGitHubURL(repoURL)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	tags, _, err := g.client.Repositories.ListTags(ctx, owner, repo, &github.ListOptions{PerPage: 1})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAPIRequest, err)
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("%w: %s/%s", ErrNoTags, owner, repo)
	}

	return tags[0].GetName(), nil
}

// parseGitHubURL extracts owner and repository from HTTPS and SSH GitHub
// repository URLs.
func parseGitHubURL(repoURL string) (owner, repo string, err error) {
	var path string
	switch {
	case strings.HasPrefix(repoURL, "https://"+GitHubDomain+"/"):
		path = strings.TrimPrefix(repoURL, "https://"+GitHubDomain+"/")
	case strings.HasPrefix(repoURL, "git@"+GitHubDomain+":"):
		path = strings.TrimPrefix(repoURL, "git@"+GitHubDomain+":")
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedRepoURL, repoURL)
	}

	path = strings.TrimSuffix(path, ".git")
	path = strings.TrimSuffix(path, "/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedRepoURL, repoURL)
	}
	return parts[0], parts[1], nil
}
