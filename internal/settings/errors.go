package settings

import "errors"

// ErrCorruptSettings indicates the top-level settings document failed to
// parse. This is fatal and surfaced verbatim: silently replacing the file
// with an empty document would discard the user's approval history.
var ErrCorruptSettings = errors.New("settings file is corrupt")

// ErrUnknownProject indicates a project name with no registry entry.
var ErrUnknownProject = errors.New("unknown project")
