package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the fnord home directory and settings file",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx, st, err := newContext()
	if err != nil {
		return err
	}
	if err := st.Init(); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("fnord home ready: %s", ctx.Home))
	printOK("", fmt.Sprintf("settings: %s", st.Path))
	return nil
}
