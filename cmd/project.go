package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage project registrations",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name> <root>",
	Short: "Register a project root for indexing",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectList,
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a project registration (approvals included)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectRemove,
}

var flagProjectExclude []string

func init() {
	projectAddCmd.Flags().StringSliceVar(&flagProjectExclude, "exclude", nil, "Path or glob to exclude from indexing (repeatable)")
	projectCmd.AddCommand(projectAddCmd, projectListCmd, projectRemoveCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	name, root := args[0], args[1]
	_, st, err := newContext()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("cannot resolve %s: %w", root, err)
	}
	if err := st.AddProject(name, abs, flagProjectExclude); err != nil {
		return err
	}
	printOK(name, fmt.Sprintf("registered: %s", abs))
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	_, st, err := newContext()
	if err != nil {
		return err
	}
	projects, err := st.Projects()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		printMiss("", "no projects registered; run 'fnord project add <name> <root>'")
		return nil
	}
	printSection("Projects")
	for _, p := range projects {
		line := p.Root
		if len(p.Exclude) > 0 {
			line += fmt.Sprintf("  (exclude: %s)", strings.Join(p.Exclude, ", "))
		}
		printOK(p.Name, line)
	}
	return nil
}

func runProjectRemove(cmd *cobra.Command, args []string) error {
	_, st, err := newContext()
	if err != nil {
		return err
	}
	if err := st.RemoveProject(args[0]); err != nil {
		return err
	}
	printOK(args[0], "removed")
	return nil
}
