package store

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// reversiblePrefix marks ids that decode back to a relative path.
	reversiblePrefix = "b64-"

	// hashedPrefix marks ids derived from a sha256 digest of the path.
	hashedPrefix = "sha-"

	// maxIDLen keeps entry ids under common filesystem name limits.
	maxIDLen = 240
)

// IDForPath derives the stable entry id for a project-relative path.
//
// The common form is reversible: a fixed prefix plus the URL-safe base64
// encoding of the path's UTF-8 bytes. When that id would exceed maxIDLen
// bytes, the id falls back to a fixed prefix plus the hex sha256 digest of
// the path, which cannot be decoded but stays within name limits.
func IDForPath(relPath string) string {
	id := reversiblePrefix + base64.RawURLEncoding.EncodeToString([]byte(relPath))
	if len(id) > maxIDLen {
		sum := sha256.Sum256([]byte(relPath))
		return hashedPrefix + hex.EncodeToString(sum[:])
	}
	return id
}

// PathFromID decodes a reversible entry id back to its relative path. It
// returns ErrIDNotReversible for hash-form and unrecognized ids.
func PathFromID(id string) (string, error) {
	if !strings.HasPrefix(id, reversiblePrefix) {
		return "", fmt.Errorf("%w: %s", ErrIDNotReversible, id)
	}
	b, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(id, reversiblePrefix))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrIDNotReversible, id)
	}
	return string(b), nil
}

// IsEntryID reports whether name looks like an entry directory name.
func IsEntryID(name string) bool {
	return strings.HasPrefix(name, reversiblePrefix) || strings.HasPrefix(name, hashedPrefix)
}

// HashBytes returns the hex sha256 digest of b.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
