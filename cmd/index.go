package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sysread/fnord/internal/embeddings"
	"github.com/sysread/fnord/internal/project"
	"github.com/sysread/fnord/internal/store"
)

var indexCmd = &cobra.Command{
	Use:   "index <project>",
	Short: "Scan a project and rebuild new, stale, and deleted entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

var (
	flagIndexDryRun  bool
	flagIndexWorkers int
)

func init() {
	indexCmd.Flags().BoolVar(&flagIndexDryRun, "dry-run", false, "Report the index status without writing anything")
	indexCmd.Flags().IntVar(&flagIndexWorkers, "workers", 4, "Concurrent embedding requests")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, st, err := newContext()
	if err != nil {
		return err
	}
	p, err := project.Load(ctx, st, args[0])
	if err != nil {
		return err
	}

	status, err := p.IndexStatus()
	if err != nil {
		return err
	}

	printSection(fmt.Sprintf("Index status: %s", p.Name))
	printBucket("new", status.New)
	printBucket("stale", status.Stale)
	printBucket("deleted", status.Deleted)

	if flagIndexDryRun {
		printSkip("", "dry run; nothing written")
		return nil
	}
	if len(status.New)+len(status.Stale)+len(status.Deleted) == 0 {
		printOK("", "index is up to date")
		return nil
	}

	for _, e := range status.Deleted {
		if err := e.Delete(); err != nil {
			return err
		}
	}

	rebuild := append(append([]*store.Entry{}, status.New...), status.Stale...)
	if len(rebuild) == 0 {
		printOK("", "index updated")
		return nil
	}

	embCfg, err := embeddings.LoadConfig(ctx)
	if err != nil {
		return err
	}
	prov, err := embeddings.NewFromConfig(embCfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(flagIndexWorkers)
	for _, e := range rebuild {
		e := e
		g.Go(func() error {
			return rebuildEntry(gctx, prov, e)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printOK("", fmt.Sprintf("indexed %d file(s), removed %d entr(ies)", len(rebuild), len(status.Deleted)))
	return nil
}

func printBucket(label string, entries []*store.Entry) {
	if len(entries) == 0 {
		printSkip("", fmt.Sprintf("%s: none", label))
		return
	}
	printInfo("", fmt.Sprintf("%s: %d", label, len(entries)))
	for _, e := range entries {
		name := e.RelPath
		if name == "" {
			name = e.ID
		}
		printMiss("", fmt.Sprintf("  %s", name))
	}
}

// rebuildEntry recomputes one entry's artifact set. Summaries and outlines
// are seeded from the file text; the research pipeline overwrites them with
// generated versions later.
func rebuildEntry(ctx context.Context, prov embeddings.Provider, e *store.Entry) error {
	src, err := os.ReadFile(e.AbsPath())
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", e.AbsPath(), err)
	}
	summary := headText(string(src), 20, 2048)
	outline := ""

	emb, err := prov.Embed(ctx, "file: "+e.RelPath+"\n"+summary)
	if err != nil {
		return fmt.Errorf("cannot embed %s: %w", e.RelPath, err)
	}
	return e.Save(summary, outline, emb)
}

// headText returns up to maxLines non-empty leading lines of s, capped at
// maxBytes.
func headText(s string, maxLines, maxBytes int) string {
	var out []string
	size := 0
	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		if len(out) >= maxLines || size+len(trimmed) > maxBytes {
			break
		}
		out = append(out, trimmed)
		size += len(trimmed) + 1
	}
	return strings.Join(out, "\n")
}
