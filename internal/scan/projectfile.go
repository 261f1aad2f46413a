package scan

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// projectFileName is the optional per-project scan configuration file.
const projectFileName = ".fnord.yml"

// ProjectFile is the in-tree scan configuration a project may carry at its
// root, merged with the excludes stored in settings.
type ProjectFile struct {
	Exclude []string `yaml:"exclude,omitempty"`
}

// LoadProjectFile reads root/.fnord.yml. A missing file yields an empty
// configuration; a malformed one is an error.
func LoadProjectFile(root string) (*ProjectFile, error) {
	p := filepath.Join(root, projectFileName)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectFile{}, nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", p, err)
	}
	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("invalid YAML in %s: %w", p, err)
	}
	return &pf, nil
}
