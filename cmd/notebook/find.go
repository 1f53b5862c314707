// ABOUTME: Line search commands: todos, links, and grep.
// ABOUTME: Each hit prints as [Book, Note, Line N] followed by the line.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

func findLines(cmd *cobra.Command, needle, empty string) error {
	matches, err := notebook.FindLines(cmd.Context(), needle)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(matches) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}
	for _, m := range matches {
		fmt.Fprint(out, ui.FormatLineMatch(m))
	}
	return nil
}

var todosCmd = &cobra.Command{
	Use:   "todos",
	Short: "List lines tagged " + repo.TodoTag,
	RunE: func(cmd *cobra.Command, args []string) error {
		return findLines(cmd, repo.TodoTag, "No todos found.")
	},
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "List lines tagged " + repo.LinkTag,
	RunE: func(cmd *cobra.Command, args []string) error {
		return findLines(cmd, repo.LinkTag, "No links found.")
	},
}

var grepCmd = &cobra.Command{
	Use:   "grep <text>",
	Short: "List lines containing text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return findLines(cmd, args[0], "No matches found.")
	},
}

func init() {
	rootCmd.AddCommand(todosCmd, linksCmd, grepCmd)
}
