package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sysread/fnord/internal/lock"
)

// legacyDirName is the subdirectory older layouts grouped entries under.
const legacyDirName = "files"

// migrateLockName guards the migration against concurrent processes.
const migrateLockName = ".migrate.lock"

// MigrateLegacyLayout lifts entries out of the legacy files/ subdirectory
// into the current store root, re-keying ids that were derived from absolute
// paths. The pass is guarded by an advisory lock on the store root: when the
// lock is busy another process is already migrating, which counts as
// success. The migration is idempotent and safe to re-run.
func (s *EntryStore) MigrateLegacyLayout() error {
	legacyDir := filepath.Join(s.Root, legacyDirName)
	if _, err := os.Stat(legacyDir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("cannot stat %s: %w", legacyDir, err)
	}

	tok, ok, err := lock.TryAcquire(filepath.Join(s.Root, migrateLockName))
	if err != nil {
		return err
	}
	if !ok {
		s.Diag.Event("migration_skipped", "store", s.Root)
		return nil
	}
	defer tok.Release()

	dirents, err := os.ReadDir(legacyDir)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", legacyDir, err)
	}
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		src := filepath.Join(legacyDir, d.Name())
		dst := filepath.Join(s.Root, s.migratedID(d.Name()))
		if err := s.relocateEntry(src, dst); err != nil {
			return err
		}
	}

	// Remove files/ once empty; stray non-entry files keep it in place.
	_ = os.Remove(legacyDir)

	s.Diag.Event("migration_done", "store", s.Root, "entries", len(dirents))
	return nil
}

// migratedID maps a legacy entry id to its id under the current scheme.
// Legacy ids encoding an absolute path are re-keyed to the relative form;
// everything else carries over unchanged.
func (s *EntryStore) migratedID(id string) string {
	p, err := PathFromID(id)
	if err != nil || !filepath.IsAbs(p) {
		return id
	}
	rel := normalizeRel(s.SourceRoot, p)
	if rel == "" {
		return id
	}
	return IDForPath(rel)
}

// relocateEntry moves one legacy entry directory to dst. When dst already
// exists (another process migrated first), artifacts absent from dst are
// copied over and existing ones are never overwritten; the legacy directory
// is removed either way.
func (s *EntryStore) relocateEntry(src, dst string) error {
	if _, err := os.Stat(dst); os.IsNotExist(err) {
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("cannot relocate entry %s: %w", src, err)
		}
		return nil
	}

	arts, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("cannot read legacy entry %s: %w", src, err)
	}
	for _, a := range arts {
		if a.IsDir() {
			continue
		}
		target := filepath.Join(dst, a.Name())
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := copyFile(filepath.Join(src, a.Name()), target); err != nil {
			return err
		}
	}
	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("cannot remove legacy entry %s: %w", src, err)
	}
	return nil
}

// copyFile copies src to dst without following an existing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("cannot create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	return out.Close()
}
