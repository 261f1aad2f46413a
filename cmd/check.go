package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sysread/fnord/internal/settings"
)

var checkCmd = &cobra.Command{
	Use:   "check <kind> <command>",
	Short: "Test whether a command is covered by stored approvals",
	Args:  cobra.ExactArgs(2),
	RunE:  runCheck,
}

var (
	flagCheckProject string
	flagCheckPrefix  bool
)

func init() {
	checkCmd.Flags().StringVar(&flagCheckProject, "project", "", "Also check this project's scope")
	checkCmd.Flags().BoolVar(&flagCheckPrefix, "prefix", false, "Match patterns as literal prefixes instead of regexes")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	kind, command := args[0], args[1]
	_, st, err := newContext()
	if err != nil {
		return err
	}

	m := settings.NewMatcher(st, flagCheckProject)
	var ok bool
	if flagCheckPrefix {
		ok, err = m.PrefixApproved(kind, command)
	} else {
		ok, err = m.Approved(kind, command)
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not approved (%s): %s", kind, command)
	}
	printOK(kind, fmt.Sprintf("approved: %s", command))
	return nil
}
