// Package scan enumerates a project's indexable source files: an explicit
// directory walk filtered by hidden-file rules, exclude patterns, the
// git-ignore oracle, and a binary/text heuristic.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ciConfigDir is the one dot-prefixed directory the hidden-file rule lets
// through, since it conventionally holds CI configuration worth indexing.
const ciConfigDir = ".github"

// Ignorer answers which root-relative paths are ignored by version control.
type Ignorer interface {
	Ignored(relPaths []string) (map[string]bool, error)
}

// Options configures one scan of a source tree.
type Options struct {
	// Root is the absolute path of the source tree.
	Root string

	// Exclude holds the project's exclusion patterns. A pattern naming an
	// existing directory prunes its subtree, one naming an existing file
	// excludes exactly that file, and anything else is matched as a glob.
	Exclude []string

	// Ignorer is the git-ignore oracle. Nil disables ignore filtering.
	Ignorer Ignorer
}

// SourceFiles returns the slash-form relative paths of every indexable file
// under opts.Root, in walk order.
func SourceFiles(opts Options) ([]string, error) {
	ex, err := newExcluder(opts.Root, opts.Exclude)
	if err != nil {
		return nil, err
	}

	var candidates []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(opts.Root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if d.IsDir() {
			if !shouldDescend(d.Name(), rel, ex) {
				return fs.SkipDir
			}
			return nil
		}
		if shouldInclude(d, rel, ex) {
			candidates = append(candidates, rel)
		}
		return nil
	}
	if err := filepath.WalkDir(opts.Root, walkFn); err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", opts.Root, err)
	}

	if opts.Ignorer != nil && len(candidates) > 0 {
		ignored, err := opts.Ignorer.Ignored(candidates)
		if err != nil {
			return nil, err
		}
		kept := candidates[:0]
		for _, rel := range candidates {
			if !ignored[rel] {
				kept = append(kept, rel)
			}
		}
		candidates = kept
	}

	var out []string
	for _, rel := range candidates {
		text, err := IsTextFile(filepath.Join(opts.Root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		if text {
			out = append(out, rel)
		}
	}
	return out, nil
}

// shouldDescend decides whether the walk enters a directory.
func shouldDescend(name, rel string, ex *excluder) bool {
	if strings.HasPrefix(name, ".") && name != ciConfigDir {
		return false
	}
	return !ex.excludesDir(rel)
}

// shouldInclude decides whether a directory entry becomes a candidate file.
func shouldInclude(d fs.DirEntry, rel string, ex *excluder) bool {
	if !d.Type().IsRegular() {
		return false
	}
	if strings.HasPrefix(d.Name(), ".") {
		return false
	}
	return !ex.excludesFile(rel)
}
