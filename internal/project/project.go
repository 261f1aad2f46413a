// Package project resolves a named project from settings and classifies its
// source tree against the entry store.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysread/fnord/internal/config"
	"github.com/sysread/fnord/internal/scan"
	"github.com/sysread/fnord/internal/settings"
	"github.com/sysread/fnord/internal/store"
)

// Project is one named source root with its entry store.
type Project struct {
	Name       string
	SourceRoot string
	Exclude    []string
	StorePath  string

	ctx *config.Context
}

// Load resolves a registered project by name.
func Load(ctx *config.Context, st *settings.Store, name string) (*Project, error) {
	info, err := st.Project(name)
	if err != nil {
		return nil, err
	}
	root, err := config.ExpandPath(info.Root)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve project root %s: %w", root, err)
		}
		root = abs
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("project root is not a directory: %s", root)
	}
	return &Project{
		Name:       name,
		SourceRoot: root,
		Exclude:    info.Exclude,
		StorePath:  ctx.ProjectStorePath(name),
		ctx:        ctx,
	}, nil
}

// Store returns the project's entry store.
func (p *Project) Store() *store.EntryStore {
	s := store.New(p.StorePath, p.SourceRoot)
	if p.ctx != nil && p.ctx.Diag != nil {
		s.Diag = p.ctx.Diag
	}
	return s
}

// SourceFiles scans the source tree and materializes entry handles for every
// indexable file. No entry-store I/O happens here.
func (p *Project) SourceFiles() ([]*store.Entry, error) {
	exclude := p.Exclude
	pf, err := scan.LoadProjectFile(p.SourceRoot)
	if err != nil {
		return nil, err
	}
	exclude = append(append([]string{}, exclude...), pf.Exclude...)

	rels, err := scan.SourceFiles(scan.Options{
		Root:    p.SourceRoot,
		Exclude: exclude,
		Ignorer: &scan.GitIgnorer{Root: p.SourceRoot},
	})
	if err != nil {
		return nil, err
	}

	st := p.Store()
	out := make([]*store.Entry, 0, len(rels))
	for _, rel := range rels {
		out = append(out, st.Entry(rel))
	}
	return out, nil
}
