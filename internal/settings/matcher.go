package settings

import (
	"regexp"
	"strings"
)

// Matcher answers whether a command string is covered by stored approvals.
// Each check consults the global scope first, then the active project's.
type Matcher struct {
	store   *Store
	project string
}

// NewMatcher returns a matcher for the given active project ("" for
// global-only checks).
func NewMatcher(store *Store, project string) *Matcher {
	return &Matcher{store: store, project: project}
}

// Approved reports whether any stored pattern for kind, compiled as a
// regular expression, matches command as an unanchored search. Authors must
// anchor with ^/$ themselves for exact-match semantics. Patterns that fail
// to compile are skipped for matching but left in storage.
func (m *Matcher) Approved(kind, command string) (bool, error) {
	return m.check(kind, func(pattern string) bool {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return false
		}
		return re.FindStringIndex(command) != nil
	})
}

// PrefixApproved reports whether command starts with any stored pattern for
// kind, treated as a literal byte-string prefix, never as a regex. The
// prefix must end on a token boundary: "npm" covers "npm install" but not
// "npminstall".
func (m *Matcher) PrefixApproved(kind, command string) (bool, error) {
	return m.check(kind, func(pattern string) bool {
		return prefixMatches(pattern, command)
	})
}

func prefixMatches(pattern, command string) bool {
	if pattern == "" || !strings.HasPrefix(command, pattern) {
		return false
	}
	rest := command[len(pattern):]
	return rest == "" || rest[0] == ' ' || pattern[len(pattern)-1] == ' '
}

func (m *Matcher) check(kind string, match func(pattern string) bool) (bool, error) {
	scopes := []string{""}
	if m.project != "" {
		scopes = append(scopes, m.project)
	}
	for _, scope := range scopes {
		patterns, err := m.store.Approvals(scope, kind)
		if err != nil {
			return false, err
		}
		for _, p := range patterns {
			if match(p) {
				return true, nil
			}
		}
	}
	return false, nil
}
