package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sysread/fnord/internal/config"
	"github.com/sysread/fnord/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:          "fnord",
	Short:        "fnord — local research assistant for code projects",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `fnord indexes your code projects into a local store of summaries,
outlines, and embeddings under ~/.fnord/, and gates automated shell
execution behind stored approvals.`,
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newContext resolves the fnord home and its settings store.
func newContext() (*config.Context, *settings.Store, error) {
	ctx, err := config.NewContext()
	if err != nil {
		return nil, nil, err
	}
	return ctx, settings.NewStore(ctx), nil
}
