package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDForPath_RoundTrip(t *testing.T) {
	paths := []string{
		"main.go",
		"internal/store/entry.go",
		"docs/notes with spaces.md",
		"päth/ünïcode/файл.txt",
		"a",
	}
	for _, p := range paths {
		id := IDForPath(p)
		assert.True(t, strings.HasPrefix(id, "b64-"), "id for %q should be reversible", p)

		got, err := PathFromID(id)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestIDForPath_LongPathFallsBackToHash(t *testing.T) {
	long := strings.Repeat("deeply/nested/", 20) + "file.go"
	id := IDForPath(long)

	assert.True(t, strings.HasPrefix(id, "sha-"))
	assert.LessOrEqual(t, len(id), 240)

	_, err := PathFromID(id)
	assert.ErrorIs(t, err, ErrIDNotReversible)
}

func TestPathFromID_Unrecognized(t *testing.T) {
	for _, id := range []string{"", "bogus", "sha-abc123", "b64-%%%not-base64%%%"} {
		_, err := PathFromID(id)
		assert.ErrorIs(t, err, ErrIDNotReversible, "id %q", id)
	}
}

func TestIsEntryID(t *testing.T) {
	assert.True(t, IsEntryID(IDForPath("a.txt")))
	assert.True(t, IsEntryID("sha-deadbeef"))
	assert.False(t, IsEntryID("files"))
	assert.False(t, IsEntryID(".migrate.lock"))
}
