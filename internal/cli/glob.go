package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandGlobs expands a list of glob patterns into a sorted, deduplicated
// list of regular files relative to root. A pattern prefixed with "!"
// excludes whatever it matches from the accumulated set, mirroring the
// teacher's ExpandGlobs (cmd/chunky/glob.go).
func ExpandGlobs(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var includes, excludes []string
	for _, p := range patterns {
		if after, ok := strings.CutPrefix(p, "!"); ok {
			excludes = append(excludes, after)
		} else {
			includes = append(includes, p)
		}
	}
	if len(includes) == 0 {
		return nil, nil
	}

	set := make(map[string]bool)
	for _, p := range includes {
		matches, err := expandGlob(root, p)
		if err != nil {
			return nil, fmt.Errorf("expand glob %q: %w", p, err)
		}
		for _, m := range matches {
			set[m] = true
		}
	}
	for _, p := range excludes {
		matches, err := expandGlob(root, p)
		if err != nil {
			return nil, fmt.Errorf("expand exclusion glob %q: %w", p, err)
		}
		for _, m := range matches {
			delete(set, m)
		}
	}

	files := make([]string, 0, len(set))
	for f := range set {
		files = append(files, f)
	}
	sort.Strings(files)
	return files, nil
}

func expandGlob(root, pattern string) ([]string, error) {
	absPattern := pattern
	if !filepath.IsAbs(pattern) {
		absPattern = filepath.Join(root, pattern)
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	var results []string
	for _, match := range matches {
		absMatch, err := filepath.Abs(match)
		if err != nil {
			return nil, fmt.Errorf("resolve match %q: %w", match, err)
		}
		info, err := os.Stat(absMatch)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		rel, err := filepath.Rel(absRoot, absMatch)
		if err != nil {
			return nil, fmt.Errorf("relativize %q: %w", absMatch, err)
		}
		if strings.HasPrefix(rel, "..") {
			return nil, fmt.Errorf("file %q is outside project root %q", absMatch, absRoot)
		}
		results = append(results, rel)
	}
	return results, nil
}
