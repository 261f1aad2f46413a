// Package store owns the on-disk entry store: one directory of derived
// artifacts (metadata, summary, outline, embedding) per project source file,
// keyed by a stable id and invalidated by content hash.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sysread/fnord/internal/logging"
)

// EntryStore manages the artifact directories for one project.
//
// Entry writes are deliberately not mutually excluded across processes: two
// indexers racing on the same source file write identical artifacts for
// identical bytes, so the final state converges. Only the legacy-layout
// migration takes a lock.
type EntryStore struct {
	// Root is the store directory for the project (…/projects/<name>).
	Root string

	// SourceRoot is the absolute path of the project's source tree.
	SourceRoot string

	// Diag receives diagnostic events; defaults to a no-op sink.
	Diag logging.Sink
}

// New returns an EntryStore rooted at root for sources under sourceRoot.
func New(root, sourceRoot string) *EntryStore {
	return &EntryStore{Root: root, SourceRoot: sourceRoot, Diag: logging.Nop()}
}

// Entry returns the handle for a project-relative path. No store I/O occurs.
func (s *EntryStore) Entry(relPath string) *Entry {
	relPath = filepath.ToSlash(relPath)
	return &Entry{store: s, ID: IDForPath(relPath), RelPath: relPath}
}

// EntryFromID reconstructs an entry handle from a stored id. For reversible
// ids the path is decoded; for hash-form ids it is recovered from the
// metadata artifact. Entries whose path cannot be recovered are returned
// with an empty RelPath (their source file is unknowable and they are
// reported as deleted by the index diff).
func (s *EntryStore) EntryFromID(id string) *Entry {
	e := &Entry{store: s, ID: id}
	if rel, err := PathFromID(id); err == nil {
		e.RelPath = normalizeRel(s.SourceRoot, rel)
		return e
	}
	if md, err := e.Metadata(); err == nil {
		e.RelPath = md.File
	}
	return e
}

// List returns handles for every entry directory currently in the store,
// in directory order. Non-entry names (the legacy files/ dir, lock files)
// are skipped.
func (s *EntryStore) List() ([]*Entry, error) {
	dirents, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read store %s: %w", s.Root, err)
	}
	var out []*Entry
	for _, d := range dirents {
		if !d.IsDir() || !IsEntryID(d.Name()) {
			continue
		}
		out = append(out, s.EntryFromID(d.Name()))
	}
	return out, nil
}

// normalizeRel converts a legacy absolute path into a source-relative slash
// path when it falls under sourceRoot. Relative input passes through.
func normalizeRel(sourceRoot, p string) string {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p)
	}
	rel, err := filepath.Rel(sourceRoot, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.ToSlash(rel)
}
