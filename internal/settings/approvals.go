package settings

import (
	"sort"
)

// approvalsKey and projectsKey are the top-level document keys.
const (
	approvalsKey = "approvals"
	projectsKey  = "projects"
)

// Approve records an approval pattern for (scope, kind). An empty project
// name targets the global scope. The stored list is deduplicated and
// lexicographically sorted after the mutation.
func (s *Store) Approve(project, kind, pattern string) error {
	return s.Update(func(doc Document) error {
		valid, _ := readPatterns(doc, project, kind)
		valid = append(valid, pattern)
		node := approvalsNode(doc, project, true)
		node[kind] = toAnyList(sortedUnique(valid))
		return nil
	})
}

// Approvals returns the approval patterns for (scope, kind), repaired:
// elements that are not well-formed pattern strings are dropped from the
// returned view. When a repair is needed, it is persisted through the full
// lock cycle against a fresh read, so a pattern added by a concurrent
// process between our read and the repair write is never lost.
func (s *Store) Approvals(project, kind string) ([]string, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	valid, dirty := readPatterns(doc, project, kind)
	if dirty {
		if err := s.repair(project, kind); err != nil {
			return nil, err
		}
	}
	return sortedUnique(valid), nil
}

// ApprovalKinds returns every kind with stored patterns in the scope.
func (s *Store) ApprovalKinds(project string) ([]string, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	node := approvalsNode(doc, project, false)
	var kinds []string
	for k := range node {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds, nil
}

// repair rewrites one (scope, kind) list with only its valid patterns. The
// filtering is redone against the fresh read taken under the lock, not
// against the snapshot that detected the corruption.
func (s *Store) repair(project, kind string) error {
	err := s.Update(func(doc Document) error {
		valid, _ := readPatterns(doc, project, kind)
		node := approvalsNode(doc, project, true)
		node[kind] = toAnyList(sortedUnique(valid))
		return nil
	})
	if err != nil {
		return err
	}
	s.Diag.Event("approval_repaired", "project", project, "kind", kind)
	return nil
}

// readPatterns extracts the valid pattern strings for (scope, kind) from
// doc. dirty is true when anything non-conforming was dropped: a kind bound
// to a non-list, or list elements that are not strings.
func readPatterns(doc Document, project, kind string) (valid []string, dirty bool) {
	node := approvalsNode(doc, project, false)
	if node == nil {
		return nil, false
	}
	raw, ok := node[kind]
	if !ok {
		return nil, false
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, true
	}
	for _, el := range list {
		if p, ok := el.(string); ok {
			valid = append(valid, p)
		} else {
			dirty = true
		}
	}
	return valid, dirty
}

// approvalsNode returns the approvals map for the scope ("" = global). With
// create set, missing or malformed intermediate nodes are (re)created.
func approvalsNode(doc Document, project string, create bool) map[string]any {
	parent := map[string]any(doc)
	if project != "" {
		parent = childMap(doc, projectsKey, create)
		if parent == nil {
			return nil
		}
		parent = childMap(parent, project, create)
		if parent == nil {
			return nil
		}
	}
	return childMap(parent, approvalsKey, create)
}

// childMap resolves node[key] as an object, optionally creating it. A key
// bound to a non-object counts as absent; with create set it is replaced,
// which discards nothing well-formed.
func childMap(node map[string]any, key string, create bool) map[string]any {
	if m, ok := node[key].(map[string]any); ok {
		return m
	}
	if !create {
		return nil
	}
	m := map[string]any{}
	node[key] = m
	return m
}

func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func toAnyList(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
