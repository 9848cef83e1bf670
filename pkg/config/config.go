// Package config provides the normalized hook-configuration model for the
// hook-manager application.
package config

import (
	"fmt"
	"regexp"
)

// Default file names for the configuration document and the hook manifest
// shipped inside hook repositories.
const (
	DefaultConfigFileName = ".hooks.yaml"
	ManifestFileName      = ".hooks-manifest.yaml"
)

// LocalRepo is the repository source marker for hooks defined directly in the
// configuration document rather than in a remote repository.
const LocalRepo = "local"

// Supported language runtimes for hook environments.
const (
	LanguagePython = "python"
	LanguageNode   = "node"
	LanguageGolang = "golang"
	LanguageSystem = "system"
	LanguageScript = "script"
	LanguageFail   = "fail"
)

// Config represents the configuration document: an ordered sequence of
// repository entries, each with a pinned revision and an ordered sequence of
// hook overrides.
type Config struct {
	Repos    []Repo `yaml:"repos"`
	FailFast bool   `yaml:"fail_fast,omitempty"`
}

// Repo represents a repository entry in the configuration document.
type Repo struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev,omitempty"`
	Hooks []Hook `yaml:"hooks"`
}

// IsLocal reports whether the repository entry declares local hooks.
func (r Repo) IsLocal() bool {
	return r.Repo == LocalRepo
}

// Hook represents a single hook definition. In a repository entry referencing
// a remote repository, unset fields inherit from the hook with the same id in
// the repository's manifest.
type Hook struct {
	ID                     string   `yaml:"id"`
	Name                   string   `yaml:"name,omitempty"`
	Entry                  string   `yaml:"entry,omitempty"`
	Language               string   `yaml:"language,omitempty"`
	Args                   []string `yaml:"args,omitempty"`
	Files                  string   `yaml:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty"`
	Types                  []string `yaml:"types_or,omitempty"`
	ExcludeTypes           []string `yaml:"exclude_types,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
	PassFilenames          *bool    `yaml:"pass_filenames,omitempty"`
	RequireSerial          bool     `yaml:"require_serial,omitempty"`
	AlwaysRun              bool     `yaml:"always_run,omitempty"`
}

// ShouldPassFilenames reports whether matched file paths are supplied as
// command arguments. Defaults to true when unset.
func (h Hook) ShouldPassFilenames() bool {
	if h.PassFilenames == nil {
		return true
	}
	return *h.PassFilenames
}

// Manifest is the ordered sequence of hook definitions shipped inside a hook
// repository.
type Manifest []Hook

// ByID returns the manifest hook with the given id.
func (m Manifest) ByID(id string) (Hook, bool) {
	for _, h := range m {
		if h.ID == id {
			return h, true
		}
	}
	return Hook{}, false
}

// validLanguages is the closed set of supported language runtimes.
var validLanguages = map[string]struct{}{
	LanguagePython: {},
	LanguageNode:   {},
	LanguageGolang: {},
	LanguageSystem: {},
	LanguageScript: {},
	LanguageFail:   {},
}

// Validate validates the configuration document: hook id uniqueness, pinned
// revisions for remote repositories, completeness of local hook definitions,
// and pattern syntax.
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return ErrNoRepositories
	}

	seen := make(map[string]struct{})
	total := 0
	for i, repo := range c.Repos {
		if repo.Repo == "" {
			return fmt.Errorf("%w: repos[%d]", ErrMissingRepoSource, i)
		}
		if !repo.IsLocal() && repo.Rev == "" {
			return fmt.Errorf("%w: %s", ErrMissingRevision, repo.Repo)
		}

		for _, hook := range repo.Hooks {
			total++
			if hook.ID == "" {
				return fmt.Errorf("%w: repos[%d]", ErrMissingHookID, i)
			}
			if _, exists := seen[hook.ID]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateHookID, hook.ID)
			}
			seen[hook.ID] = struct{}{}

			if repo.IsLocal() && hook.Entry == "" {
				return fmt.Errorf("%w: %s", ErrMissingEntry, hook.ID)
			}
			// The language runtime is part of the environment identity, so it
			// must be known before any repository is cloned.
			if hook.Language == "" {
				return fmt.Errorf("%w: %s", ErrMissingLanguage, hook.ID)
			}
			if _, ok := validLanguages[hook.Language]; !ok {
				return fmt.Errorf("%w: %s (hook %s)", ErrUnknownLanguage, hook.Language, hook.ID)
			}
			if err := validatePattern(hook.Files); err != nil {
				return fmt.Errorf("%w: files pattern of hook %s: %w", ErrInvalidPattern, hook.ID, err)
			}
			if err := validatePattern(hook.Exclude); err != nil {
				return fmt.Errorf("%w: exclude pattern of hook %s: %w", ErrInvalidPattern, hook.ID, err)
			}
		}
	}

	if total == 0 {
		return ErrNoHooks
	}
	return nil
}

// validatePattern checks that a filter pattern is a valid regular expression.
func validatePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	_, err := regexp.Compile(pattern)
	return err
}
