package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact file names inside an entry directory.
const (
	metadataFile   = "metadata.json"
	summaryFile    = "summary"
	outlineFile    = "outline"
	embeddingsFile = "embeddings.json"
)

// Metadata is the metadata.json artifact.
type Metadata struct {
	File      string `json:"file"`
	Timestamp string `json:"timestamp"`
	Hash      string `json:"hash"`
}

// Artifacts is the full artifact set read from an entry directory.
type Artifacts struct {
	Metadata  Metadata
	Summary   string
	Outline   string
	Embedding []float32
}

// Entry is the handle for one source file's cached artifact set.
type Entry struct {
	store *EntryStore

	// ID is the entry directory name (see IDForPath).
	ID string

	// RelPath is the source file's path relative to the project root, in
	// slash form. Empty when the path could not be recovered from a
	// hash-form id with missing metadata.
	RelPath string
}

// Dir returns the entry's directory inside the store.
func (e *Entry) Dir() string {
	return filepath.Join(e.store.Root, e.ID)
}

// AbsPath resolves the source file's absolute path from the project root.
// The absolute path is never persisted; it is derived at use time.
func (e *Entry) AbsPath() string {
	if e.RelPath == "" {
		return ""
	}
	return filepath.Join(e.store.SourceRoot, filepath.FromSlash(e.RelPath))
}

// SourceExists reports whether the live source file is present.
func (e *Entry) SourceExists() bool {
	p := e.AbsPath()
	if p == "" {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// ExistsInStore reports whether the entry directory is present.
func (e *Entry) ExistsInStore() bool {
	info, err := os.Stat(e.Dir())
	return err == nil && info.IsDir()
}

// IsIncomplete reports whether any of the four artifacts is absent. A
// half-written entry (interrupted save, concurrent writer) shows up here
// and is rebuilt on the next index pass.
func (e *Entry) IsIncomplete() bool {
	for _, name := range []string{metadataFile, summaryFile, outlineFile, embeddingsFile} {
		if _, err := os.Stat(filepath.Join(e.Dir(), name)); err != nil {
			return true
		}
	}
	return false
}

// HashIsCurrent reports whether the stored content hash matches the live
// source file's bytes. A missing source file or unreadable metadata is
// simply not current.
func (e *Entry) HashIsCurrent() bool {
	md, err := e.Metadata()
	if err != nil {
		return false
	}
	p := e.AbsPath()
	if p == "" {
		return false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return false
	}
	return md.Hash != "" && md.Hash == HashBytes(b)
}

// IsStale reports whether the entry needs (re-)computation: missing,
// incomplete, or no longer matching the source content. Staleness is normal
// input for the indexing pipeline, never an error.
func (e *Entry) IsStale() bool {
	return !e.ExistsInStore() || e.IsIncomplete() || !e.HashIsCurrent()
}

// Metadata reads and decodes metadata.json. Legacy entries may carry an
// absolute path in "file"; it is normalized to a project-relative path on
// read and never written back as absolute.
func (e *Entry) Metadata() (*Metadata, error) {
	p := filepath.Join(e.Dir(), metadataFile)
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoMetadata, e.ID)
		}
		return nil, fmt.Errorf("cannot read %s: %w", p, err)
	}
	var md Metadata
	if err := json.Unmarshal(b, &md); err != nil {
		return nil, fmt.Errorf("invalid metadata JSON %s: %w", p, err)
	}
	md.File = normalizeRel(e.store.SourceRoot, md.File)
	return &md, nil
}

// Save replaces the entry's artifact set: the entry directory is deleted and
// recreated, then all four artifacts are written. If the process dies midway
// the entry reads as incomplete and is rebuilt; no artifact is ever treated
// as valid unless all four agree.
func (e *Entry) Save(summary, outline string, embedding []float32) error {
	src, err := os.ReadFile(e.AbsPath())
	if err != nil {
		return fmt.Errorf("cannot read source %s: %w", e.AbsPath(), err)
	}

	dir := e.Dir()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("cannot clear entry %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create entry %s: %w", dir, err)
	}

	md := Metadata{
		File:      e.RelPath,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      HashBytes(src),
	}
	mb, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), mb, 0o644); err != nil {
		return fmt.Errorf("cannot write metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, summaryFile), []byte(summary), 0o644); err != nil {
		return fmt.Errorf("cannot write summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, outlineFile), []byte(outline), 0o644); err != nil {
		return fmt.Errorf("cannot write outline: %w", err)
	}
	eb, err := json.Marshal(embedding)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, embeddingsFile), eb, 0o644); err != nil {
		return fmt.Errorf("cannot write embeddings: %w", err)
	}

	e.store.Diag.Event("entry_saved", "id", e.ID, "file", e.RelPath)
	return nil
}

// Read returns the entry's full artifact set.
func (e *Entry) Read() (*Artifacts, error) {
	md, err := e.Metadata()
	if err != nil {
		return nil, err
	}
	dir := e.Dir()
	summary, err := os.ReadFile(filepath.Join(dir, summaryFile))
	if err != nil {
		return nil, fmt.Errorf("cannot read summary for %s: %w", e.ID, err)
	}
	outline, err := os.ReadFile(filepath.Join(dir, outlineFile))
	if err != nil {
		return nil, fmt.Errorf("cannot read outline for %s: %w", e.ID, err)
	}
	eb, err := os.ReadFile(filepath.Join(dir, embeddingsFile))
	if err != nil {
		return nil, fmt.Errorf("cannot read embeddings for %s: %w", e.ID, err)
	}
	var embedding []float32
	if err := json.Unmarshal(eb, &embedding); err != nil {
		return nil, fmt.Errorf("invalid embeddings JSON for %s: %w", e.ID, err)
	}
	return &Artifacts{
		Metadata:  *md,
		Summary:   string(summary),
		Outline:   string(outline),
		Embedding: embedding,
	}, nil
}

// Delete removes the entry directory. Deleting an absent entry is a no-op.
func (e *Entry) Delete() error {
	if err := os.RemoveAll(e.Dir()); err != nil {
		return fmt.Errorf("cannot delete entry %s: %w", e.ID, err)
	}
	e.store.Diag.Event("entry_deleted", "id", e.ID, "file", e.RelPath)
	return nil
}
