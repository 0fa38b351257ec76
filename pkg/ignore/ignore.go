// Package ignore provides gitignore-based file filtering for source scans
// using go-git's pattern matcher.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// IgnoreFileName is the fontmerge-specific ignore file consulted at a
// source root and under the user's ~/.fontmerge directory.
const IgnoreFileName = ".fontmergeignore"

// Matcher filters scan paths against layered ignore patterns. All paths
// handed to it are slash-separated and relative to the source root it was
// built for.
type Matcher struct {
	matcher gitignore.Matcher
}

// NewMatcher creates a matcher for sourceRoot with layered patterns:
//  1. built-in defaults that never belong in a font scan
//  2. .gitignore and related git ignore files under the root
//  3. .fontmergeignore at the root
//  4. user-level ~/.fontmerge/.fontmergeignore
func NewMatcher(sourceRoot string) (*Matcher, error) {
	fs := osfs.New(sourceRoot)

	var patterns []gitignore.Pattern
	for _, p := range []string{".git/**", ".DS_Store", "node_modules/**"} {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}

	// ReadPatterns with a nil domain reads .gitignore files throughout
	// the tree rooted at sourceRoot.
	if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
		patterns = append(patterns, gitPatterns...)
	}

	if rootPatterns, err := readIgnoreFile(filepath.Join(sourceRoot, IgnoreFileName)); err == nil {
		for _, p := range rootPatterns {
			patterns = append(patterns, gitignore.ParsePattern(p, nil))
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(homeDir, ".fontmerge", IgnoreFileName)
		if userPatterns, err := readIgnoreFile(userPath); err == nil {
			for _, p := range userPatterns {
				patterns = append(patterns, gitignore.ParsePattern(p, nil))
			}
		}
	}

	return &Matcher{matcher: gitignore.NewMatcher(patterns)}, nil
}

// readIgnoreFile reads newline-separated patterns, dropping blanks and
// comments. Only .fontmergeignore files are readable through this path.
func readIgnoreFile(path string) ([]string, error) {
	cleaned := filepath.Clean(path)
	if filepath.Base(cleaned) != IgnoreFileName {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- base name allowlisted above
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// IsIgnored reports whether the relative file path matches any ignore
// pattern.
func (m *Matcher) IsIgnored(relPath string) bool {
	parts := splitPath(relPath)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, false)
}

// IsIgnoredDir reports whether the relative directory path matches any
// ignore pattern, so walkers can skip the whole subtree.
func (m *Matcher) IsIgnoredDir(relPath string) bool {
	parts := splitPath(relPath)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, true)
}

// splitPath converts a slash-separated relative path into the component
// slices go-git's matcher expects.
func splitPath(path string) []string {
	if path == "" || path == "." {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
