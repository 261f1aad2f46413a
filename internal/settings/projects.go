package settings

import (
	"fmt"
	"sort"
)

// ProjectInfo is one project registration from settings.json.
type ProjectInfo struct {
	Name    string
	Root    string
	Exclude []string
}

// AddProject registers (or updates) a project's root and exclude patterns.
// Any approvals already stored under the project are preserved.
func (s *Store) AddProject(name, root string, exclude []string) error {
	return s.Update(func(doc Document) error {
		projects := childMap(doc, projectsKey, true)
		entry := childMap(projects, name, true)
		entry["root"] = root
		entry["exclude"] = toAnyList(sortedUnique(exclude))
		return nil
	})
}

// RemoveProject deletes a project registration, including its approvals.
func (s *Store) RemoveProject(name string) error {
	return s.Update(func(doc Document) error {
		projects := childMap(doc, projectsKey, false)
		if projects == nil {
			return fmt.Errorf("%w: %s", ErrUnknownProject, name)
		}
		if _, ok := projects[name]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownProject, name)
		}
		delete(projects, name)
		return nil
	})
}

// Project returns one project registration.
func (s *Store) Project(name string) (*ProjectInfo, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	projects := childMap(doc, projectsKey, false)
	if projects == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProject, name)
	}
	entry := childMap(projects, name, false)
	if entry == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProject, name)
	}
	return projectInfo(name, entry), nil
}

// Projects lists every registered project, sorted by name.
func (s *Store) Projects() ([]ProjectInfo, error) {
	doc, err := s.Read()
	if err != nil {
		return nil, err
	}
	projects := childMap(doc, projectsKey, false)
	var out []ProjectInfo
	for name := range projects {
		if entry := childMap(projects, name, false); entry != nil {
			out = append(out, *projectInfo(name, entry))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func projectInfo(name string, entry map[string]any) *ProjectInfo {
	info := &ProjectInfo{Name: name}
	if root, ok := entry["root"].(string); ok {
		info.Root = root
	}
	if list, ok := entry["exclude"].([]any); ok {
		for _, el := range list {
			if p, ok := el.(string); ok {
				info.Exclude = append(info.Exclude, p)
			}
		}
	}
	return info
}
