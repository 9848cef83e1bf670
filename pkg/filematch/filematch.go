// Package filematch computes the exact subset of candidate files a hook
// should see, from include/exclude patterns, inferred file types and explicit
// file lists.
package filematch

import (
	"fmt"
	"regexp"
	"sort"
)

// FileRecord is a candidate file together with its inferred types. Records
// are produced once per run and read-only afterward.
type FileRecord struct {
	Path  string
	Types map[string]struct{}
}

// FilterSpec is the conjunction of filter rules narrowing which files a hook
// sees. Patterns are Go regular expressions matched anywhere in the path.
type FilterSpec struct {
	Include       string
	Exclude       string
	Types         []string
	ExcludeTypes  []string
	ExplicitFiles []string
}

// Match computes the subset of candidate paths a hook should see. It is a
// pure function; the returned paths are sorted. Evaluation order is fixed:
// explicit file list intersection, exclusion, type filters (any-of), then
// inclusion.
func Match(filter FilterSpec, candidates []FileRecord) ([]string, error) {
	includeRe, err := compilePattern(filter.Include)
	if err != nil {
		return nil, fmt.Errorf("%w: include: %w", ErrInvalidPattern, err)
	}
	excludeRe, err := compilePattern(filter.Exclude)
	if err != nil {
		return nil, fmt.Errorf("%w: exclude: %w", ErrInvalidPattern, err)
	}

	var explicit map[string]struct{}
	if filter.ExplicitFiles != nil {
		explicit = make(map[string]struct{}, len(filter.ExplicitFiles))
		for _, path := range filter.ExplicitFiles {
			explicit[path] = struct{}{}
		}
	}

	matched := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if explicit != nil {
			if _, ok := explicit[candidate.Path]; !ok {
				continue
			}
		}
		if excludeRe != nil && excludeRe.MatchString(candidate.Path) {
			continue
		}
		if !typesMatch(filter.Types, candidate.Types) {
			continue
		}
		if anyTypeMatches(filter.ExcludeTypes, candidate.Types) {
			continue
		}
		if includeRe != nil && !includeRe.MatchString(candidate.Path) {
			continue
		}
		matched = append(matched, candidate.Path)
	}

	sort.Strings(matched)
	return matched, nil
}

// typesMatch reports whether the candidate satisfies the type filter. An
// empty filter matches everything; otherwise any single overlapping type
// suffices ("types_or" semantics).
func typesMatch(want []string, have map[string]struct{}) bool {
	if len(want) == 0 {
		return true
	}
	return anyTypeMatches(want, have)
}

// anyTypeMatches reports whether any of the wanted types is present.
func anyTypeMatches(want []string, have map[string]struct{}) bool {
	for _, t := range want {
		if _, ok := have[t]; ok {
			return true
		}
	}
	return false
}

// compilePattern compiles a non-empty filter pattern.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
