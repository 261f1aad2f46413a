package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestSourceFiles_SkipsHiddenExceptGithub(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, ".env", "SECRET=1\n")
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, ".github/workflows/ci.yml", "on: push\n")
	writeFile(t, root, "src/.hidden.txt", "x\n")

	files, err := SourceFiles(Options{Root: root})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.go", ".github/workflows/ci.yml"}, files)
}

func TestSourceFiles_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.go", "package keep\n")
	writeFile(t, root, "drop.go", "package drop\n")
	writeFile(t, root, "vendor/dep/dep.go", "package dep\n")
	writeFile(t, root, "notes/todo.md", "# todo\n")
	writeFile(t, root, "notes/readme.md", "# readme\n")

	files, err := SourceFiles(Options{
		Root: root,
		Exclude: []string{
			"vendor",    // existing directory: prunes the subtree
			"drop.go",   // existing file: exact exclusion
			"*/todo.md", // everything else: glob
		},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"keep.go", "notes/readme.md"}, files)
}

func TestSourceFiles_GlobMatchesBaseName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/generated.pb.go", "package b\n")
	writeFile(t, root, "a/b/real.go", "package b\n")

	files, err := SourceFiles(Options{Root: root, Exclude: []string{"*.pb.go"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a/b/real.go"}, files)
}

func TestSourceFiles_FiltersBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "text.txt", "just text\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.bin"), []byte{0xff, 0xfe, 0x00, 0x01}, 0o644))

	files, err := SourceFiles(Options{Root: root})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"text.txt"}, files)
}

func TestSourceFiles_SkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real.txt", "x\n")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")))

	files, err := SourceFiles(Options{Root: root})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"real.txt"}, files)
}

type fakeIgnorer struct {
	ignored map[string]bool
}

func (f *fakeIgnorer) Ignored(rels []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, r := range rels {
		if f.ignored[r] {
			out[r] = true
		}
	}
	return out, nil
}

func TestSourceFiles_AppliesIgnorer(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "kept.go", "package kept\n")
	writeFile(t, root, "build/out.txt", "artifact\n")

	files, err := SourceFiles(Options{
		Root:    root,
		Ignorer: &fakeIgnorer{ignored: map[string]bool{"build/out.txt": true}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kept.go"}, files)
}
