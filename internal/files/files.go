// Package files expands file arguments and glob patterns into file paths.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never descended into while matching globs
var skipDirs = []string{"node_modules", "dist", "build"}

// IsPattern reports whether arg contains glob syntax
func IsPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// Expand resolves each argument relative to root. Plain paths are kept as given
// and glob patterns are matched against the files below root. The result has no
// duplicates and keeps argument order, with the matches of one pattern sorted.
func Expand(root string, args []string) ([]string, error) {
	var result []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			result = append(result, path)
		}
	}

	for _, arg := range args {
		if !IsPattern(arg) {
			add(resolve(root, arg))
			continue
		}

		matches, err := match(root, arg)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %s", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return result, nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) || root == "" {
		return path
	}
	return filepath.Join(root, path)
}

// match walks root and collects the files whose path relative to root matches pattern
func match(root, pattern string) ([]string, error) {
	if root == "" {
		root = "."
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid glob pattern %q", pattern)
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries, continue walking
		}
		if d.IsDir() {
			if path != root && shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if ok, _ := matchGlobPattern(pattern, rel); ok {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.Sort(matches)
	return matches, nil
}

// shouldSkipDirectory reports hidden directories and common build/dependency directories
func shouldSkipDirectory(name string) bool {
	return strings.HasPrefix(name, ".") || slices.Contains(skipDirs, name)
}

// matchGlobPattern matches a glob pattern against a path using doublestar.
// doublestar.Match expects forward slashes on every platform.
func matchGlobPattern(pattern, path string) (bool, error) {
	return doublestar.Match(filepath.ToSlash(strings.TrimPrefix(pattern, "./")), filepath.ToSlash(path))
}

// Exists reports whether path names an existing regular file
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
