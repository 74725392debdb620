package parser

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandGlobs expands a list of history paths and glob patterns into a deduplicated,
// sorted list of paths. Patterns that match nothing are returned as-is so that
// reading them later produces a file-not-found error naming the path.
// The stdin source "-" passes through untouched.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			result = append(result, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == StdinSource {
			add(pattern)
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			add(pattern)
			continue
		}

		for _, match := range matches {
			add(match)
		}
	}

	sort.Strings(result)

	return result, nil
}
