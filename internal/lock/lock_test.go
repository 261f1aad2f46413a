package lock

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lock")

	tok, err := Acquire(path, time.Second)
	require.NoError(t, err)
	tok.Release()

	// Released locks can be re-acquired immediately.
	tok2, err := Acquire(path, time.Second)
	require.NoError(t, err)
	tok2.Release()
}

func TestAcquire_TimesOutWhileHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lock")

	tok, err := Acquire(path, time.Second)
	require.NoError(t, err)
	defer tok.Release()

	start := time.Now()
	_, err = Acquire(path, 400*time.Millisecond)
	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
}

func TestTryAcquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.lock")

	tok, ok, err := TryAcquire(path)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = TryAcquire(path)
	require.NoError(t, err)
	assert.False(t, ok)

	tok.Release()
	tok2, ok, err := TryAcquire(path)
	require.NoError(t, err)
	assert.True(t, ok)
	tok2.Release()
}

func TestRelease_NilTokenIsSafe(t *testing.T) {
	var tok *Token
	tok.Release()
}
