package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *EntryStore {
	t.Helper()
	tmp := t.TempDir()
	sourceRoot := filepath.Join(tmp, "src")
	require.NoError(t, os.MkdirAll(sourceRoot, 0o755))
	return New(filepath.Join(tmp, "store"), sourceRoot)
}

func writeSource(t *testing.T, s *EntryStore, rel, content string) {
	t.Helper()
	p := filepath.Join(s.SourceRoot, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestEntry_SaveAndRead(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "pkg/thing.go", "package thing\n")

	e := s.Entry("pkg/thing.go")
	require.NoError(t, e.Save("a summary", "an outline", []float32{0.1, 0.2}))

	assert.True(t, e.ExistsInStore())
	assert.False(t, e.IsIncomplete())
	assert.True(t, e.HashIsCurrent())
	assert.False(t, e.IsStale())

	arts, err := e.Read()
	require.NoError(t, err)
	assert.Equal(t, "pkg/thing.go", arts.Metadata.File)
	assert.Equal(t, HashBytes([]byte("package thing\n")), arts.Metadata.Hash)
	assert.NotEmpty(t, arts.Metadata.Timestamp)
	assert.Equal(t, "a summary", arts.Summary)
	assert.Equal(t, "an outline", arts.Outline)
	assert.Equal(t, []float32{0.1, 0.2}, arts.Embedding)
}

func TestEntry_IsIncomplete_AnyMissingArtifact(t *testing.T) {
	for _, missing := range []string{"metadata.json", "summary", "outline", "embeddings.json"} {
		s := newTestStore(t)
		writeSource(t, s, "a.txt", "hello\n")

		e := s.Entry("a.txt")
		require.NoError(t, e.Save("s", "o", []float32{1}))
		require.NoError(t, os.Remove(filepath.Join(e.Dir(), missing)))

		assert.True(t, e.IsIncomplete(), "missing %s should read incomplete", missing)
		assert.True(t, e.IsStale())
	}
}

func TestEntry_StaleAfterSourceMutation(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "a.txt", "v1\n")

	e := s.Entry("a.txt")
	require.NoError(t, e.Save("s", "o", []float32{1}))
	assert.False(t, e.IsStale())

	writeSource(t, s, "a.txt", "v2\n")
	assert.False(t, e.IsIncomplete())
	assert.False(t, e.HashIsCurrent())
	assert.True(t, e.IsStale())
}

func TestEntry_StaleWhenSourceMissing(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "a.txt", "gone\n")

	e := s.Entry("a.txt")
	require.NoError(t, e.Save("s", "o", []float32{1}))
	require.NoError(t, os.Remove(e.AbsPath()))

	assert.True(t, e.IsStale())
}

func TestEntry_SaveReplacesWholeArtifactSet(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "a.txt", "v1\n")

	e := s.Entry("a.txt")
	require.NoError(t, e.Save("s1", "o1", []float32{1}))
	// A stray file from an interrupted writer must not survive a save.
	stray := filepath.Join(e.Dir(), "leftover.tmp")
	require.NoError(t, os.WriteFile(stray, []byte("x"), 0o644))

	require.NoError(t, e.Save("s2", "o2", []float32{2}))
	_, err := os.Stat(stray)
	assert.True(t, os.IsNotExist(err))

	arts, err := e.Read()
	require.NoError(t, err)
	assert.Equal(t, "s2", arts.Summary)
}

func TestEntry_LegacyAbsoluteMetadataPathNormalized(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "lib/old.go", "package old\n")

	e := s.Entry("lib/old.go")
	require.NoError(t, e.Save("s", "o", []float32{1}))

	// Rewrite metadata the way a legacy version stored it.
	md := Metadata{
		File:      filepath.Join(s.SourceRoot, "lib", "old.go"),
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      HashBytes([]byte("package old\n")),
	}
	b, err := json.Marshal(md)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(e.Dir(), "metadata.json"), b, 0o644))

	got, err := e.Metadata()
	require.NoError(t, err)
	assert.Equal(t, "lib/old.go", got.File)
	assert.True(t, e.HashIsCurrent())
}

func TestEntryStore_List(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "a.txt", "a\n")
	writeSource(t, s, "b/c.txt", "c\n")
	require.NoError(t, s.Entry("a.txt").Save("s", "o", []float32{1}))
	require.NoError(t, s.Entry("b/c.txt").Save("s", "o", []float32{1}))

	// Non-entry names are skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(s.Root, "files"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.Root, "stray.txt"), []byte("x"), 0o644))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	rels := []string{entries[0].RelPath, entries[1].RelPath}
	assert.ElementsMatch(t, []string{"a.txt", "b/c.txt"}, rels)
}

func TestEntryStore_ListMissingRootIsEmpty(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	entries, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEntry_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	writeSource(t, s, "a.txt", "a\n")

	e := s.Entry("a.txt")
	require.NoError(t, e.Save("s", "o", []float32{1}))
	require.NoError(t, e.Delete())
	assert.False(t, e.ExistsInStore())
	require.NoError(t, e.Delete())
}
