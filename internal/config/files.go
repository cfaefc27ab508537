package config

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// descriptionExts are the file extensions the loader understands.
var descriptionExts = map[string]bool{
	".json": true,
	".cue":  true,
	".yaml": true,
	".yml":  true,
}

// ResolveInputs expands the Inputs glob patterns relative to rootPath,
// drops Exclude matches and returns the description files in sorted order.
func (c *Config) ResolveInputs(rootPath string) ([]string, error) {
	excluded := make(map[string]bool)
	for _, pattern := range c.Exclude {
		for _, m := range glob(rootPath, pattern) {
			excluded[m] = true
		}
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range c.Inputs {
		for _, m := range glob(rootPath, pattern) {
			if seen[m] || excluded[m] || c.IsExcluded(m) {
				continue
			}
			if !descriptionExts[strings.ToLower(filepath.Ext(m))] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// IsExcluded checks whether the base name of a file matches one of the
// Exclude patterns.
func (c *Config) IsExcluded(filePath string) bool {
	for _, pattern := range c.Exclude {
		if matched, _ := filepath.Match(pattern, filepath.Base(filePath)); matched {
			return true
		}
	}
	return false
}

// glob expands pattern relative to root. A "**" element matches any
// number of directories. Invalid patterns and missing directories match
// nothing.
func glob(root, pattern string) []string {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(root, pattern)
	}
	before, after, recursive := strings.Cut(pattern, "**")
	if !recursive {
		matches, _ := filepath.Glob(pattern)
		return matches
	}

	base := filepath.Clean(before)
	tail := strings.TrimPrefix(after, string(filepath.Separator))
	var matches []string
	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(base, path); err == nil && matchTail(rel, tail) {
			matches = append(matches, path)
		}
		return nil
	})
	return matches
}

// matchTail matches the trailing path elements of rel against tail, the
// part of a pattern after "**".
func matchTail(rel, tail string) bool {
	if tail == "" {
		return true
	}
	sep := string(filepath.Separator)
	parts := strings.Split(rel, sep)
	n := strings.Count(tail, sep) + 1
	if n > len(parts) {
		return false
	}
	matched, _ := filepath.Match(tail, filepath.Join(parts[len(parts)-n:]...))
	return matched
}
