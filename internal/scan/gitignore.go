package scan

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitIgnorer is the git-ignore oracle, backed by a `git check-ignore`
// subprocess. Paths are checked in one batch per scan. When git is not
// installed or root is not a repository, nothing is considered ignored.
type GitIgnorer struct {
	Root string
}

// Ignored reports which of the given root-relative paths git ignores.
func (g *GitIgnorer) Ignored(relPaths []string) (map[string]bool, error) {
	out := make(map[string]bool)
	if _, err := exec.LookPath("git"); err != nil {
		return out, nil
	}
	if _, err := os.Stat(filepath.Join(g.Root, ".git")); err != nil {
		return out, nil
	}

	var stdin bytes.Buffer
	for _, p := range relPaths {
		stdin.WriteString(p)
		stdin.WriteByte(0)
	}

	cmd := exec.Command("git", "-C", g.Root, "check-ignore", "--stdin", "-z")
	cmd.Stdin = &stdin
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		// Exit status 1 means no path is ignored; anything else (a bare
		// repo, a corrupt index) fails open so indexing can proceed.
		return out, nil
	}

	for _, p := range strings.Split(stdout.String(), "\x00") {
		if p != "" {
			out[filepath.ToSlash(p)] = true
		}
	}
	return out, nil
}
