package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve <kind> <pattern>",
	Short: "Store an approval pattern for automated command execution",
	Long: `Store an approval pattern under the global scope, or under a project
with --project. Patterns for 'fnord check' are regular expressions matched
as an unanchored search; anchor with ^ and $ for exact-match semantics.`,
	Args: cobra.ExactArgs(2),
	RunE: runApprove,
}

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "List stored approval patterns",
	Args:  cobra.NoArgs,
	RunE:  runApprovals,
}

var flagApprovalProject string

func init() {
	approveCmd.Flags().StringVar(&flagApprovalProject, "project", "", "Store under this project's scope instead of global")
	approvalsCmd.Flags().StringVar(&flagApprovalProject, "project", "", "Also list this project's scope")
	rootCmd.AddCommand(approveCmd, approvalsCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	kind, pattern := args[0], args[1]
	_, st, err := newContext()
	if err != nil {
		return err
	}
	if err := st.Approve(flagApprovalProject, kind, pattern); err != nil {
		return err
	}
	scope := "global"
	if flagApprovalProject != "" {
		scope = flagApprovalProject
	}
	printOK(scope, fmt.Sprintf("approved %s: %s", kind, pattern))
	return nil
}

func runApprovals(cmd *cobra.Command, args []string) error {
	_, st, err := newContext()
	if err != nil {
		return err
	}

	scopes := []string{""}
	if flagApprovalProject != "" {
		scopes = append(scopes, flagApprovalProject)
	}
	for _, scope := range scopes {
		label := "Global approvals"
		if scope != "" {
			label = fmt.Sprintf("Approvals for %s", scope)
		}
		printSection(label)

		kinds, err := st.ApprovalKinds(scope)
		if err != nil {
			return err
		}
		if len(kinds) == 0 {
			printMiss("", "none")
			continue
		}
		for _, kind := range kinds {
			patterns, err := st.Approvals(scope, kind)
			if err != nil {
				return err
			}
			printOK(kind, strings.Join(patterns, ", "))
		}
	}
	return nil
}
