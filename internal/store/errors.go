package store

import "errors"

// ErrIDNotReversible indicates an entry id that cannot be decoded back to a
// relative path (hash-form or unrecognized ids).
var ErrIDNotReversible = errors.New("entry id is not reversible")

// ErrNoMetadata indicates an entry directory without a readable metadata
// artifact.
var ErrNoMetadata = errors.New("entry has no metadata")
