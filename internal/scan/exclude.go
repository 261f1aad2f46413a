package scan

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// excluder applies a project's exclusion patterns. Patterns are classified
// once against the live filesystem: existing directories prune subtrees,
// existing files are exact exclusions, and the rest are globs matched
// against both the relative path and the base name.
type excluder struct {
	dirs  []string
	files map[string]bool
	globs []string
}

func newExcluder(root string, patterns []string) (*excluder, error) {
	ex := &excluder{files: make(map[string]bool)}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rel := filepath.ToSlash(filepath.Clean(p))
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		switch {
		case err == nil && info.IsDir():
			ex.dirs = append(ex.dirs, rel)
		case err == nil:
			ex.files[rel] = true
		default:
			ex.globs = append(ex.globs, p)
		}
	}
	return ex, nil
}

func (ex *excluder) excludesDir(rel string) bool {
	for _, d := range ex.dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	return false
}

func (ex *excluder) excludesFile(rel string) bool {
	if ex.files[rel] {
		return true
	}
	for _, d := range ex.dirs {
		if strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	for _, g := range ex.globs {
		if ok, err := path.Match(g, rel); err == nil && ok {
			return true
		}
		if ok, err := path.Match(g, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}
