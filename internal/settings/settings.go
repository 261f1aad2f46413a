// Package settings manages the single settings.json document shared by
// every fnord process of one user: global and per-project configuration,
// including the approval patterns that gate shell-command execution.
//
// Every mutation follows lock → re-read → transform → write → unlock. The
// in-memory copy that motivated a change is never written back; the
// transform runs against a fresh read taken under the lock, so a writer
// cannot clobber a concurrent writer's committed change.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sysread/fnord/internal/config"
	"github.com/sysread/fnord/internal/lock"
	"github.com/sysread/fnord/internal/logging"
)

// DefaultLockTimeout bounds the wait for the settings lock. On timeout the
// mutation fails with lock.ErrLockTimeout; it never proceeds unlocked.
const DefaultLockTimeout = 5 * time.Second

// Document is the decoded settings.json tree. Mutations operate on the
// generic tree so that keys this version does not understand survive a
// read-modify-write cycle untouched.
type Document = map[string]any

// Store mediates all access to one settings.json file.
type Store struct {
	// Path is the absolute path of settings.json.
	Path string

	// LockTimeout bounds lock acquisition for mutations.
	LockTimeout time.Duration

	// Diag receives diagnostic events; defaults to a no-op sink.
	Diag logging.Sink
}

// NewStore returns the settings store for ctx's fnord home.
func NewStore(ctx *config.Context) *Store {
	diag := ctx.Diag
	if diag == nil {
		diag = logging.Nop()
	}
	return &Store{Path: ctx.SettingsPath(), LockTimeout: DefaultLockTimeout, Diag: diag}
}

// Read decodes the current settings document. A missing file reads as an
// empty document. A file that fails top-level JSON parsing is fatal: the
// parse error is surfaced verbatim, wrapped in ErrCorruptSettings.
func (s *Store) Read() (Document, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("cannot read settings %s: %w", s.Path, err)
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptSettings, s.Path, err)
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Init creates the fnord home and an empty settings.json when absent.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("cannot create settings dir: %w", err)
	}
	if _, err := os.Stat(s.Path); err == nil {
		return nil
	}
	return s.write(Document{})
}

// Update applies transform to a fresh read of the document under the
// settings lock and persists the result atomically. transform receives the
// document as read after lock acquisition and may modify it in place.
func (s *Store) Update(transform func(Document) error) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("cannot create settings dir: %w", err)
	}
	tok, err := lock.Acquire(s.lockPath(), s.LockTimeout)
	if err != nil {
		return err
	}
	defer tok.Release()

	doc, err := s.Read()
	if err != nil {
		return err
	}
	if err := transform(doc); err != nil {
		return err
	}
	if err := s.write(doc); err != nil {
		return err
	}
	s.Diag.Event("settings_written", "path", s.Path)
	return nil
}

// write marshals doc to a temporary file and renames it into place, so a
// reader never observes a partially written document.
func (s *Store) write(doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal settings: %w", err)
	}
	tmp := fmt.Sprintf("%s.tmp-%s", s.Path, uuid.NewString())
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("cannot write settings: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot replace settings: %w", err)
	}
	return nil
}

func (s *Store) lockPath() string {
	return s.Path + ".lock"
}
