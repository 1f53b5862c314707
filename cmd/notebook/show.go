// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders markdown content with glamour.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a note",
	Long:  `Display a note's full content with rendered markdown.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveNoteRef(cmd, args[0])
		if err != nil {
			return err
		}
		if err := controller.SelectNote(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		note := controller.State().SelectedNote
		if note == nil {
			return repo.ErrNoteNotFound
		}

		raw, _ := cmd.Flags().GetBool("raw")
		out := cmd.OutOrStdout()
		fmt.Fprint(out, ui.FormatNoteHeader(*note, bookName(cmd, note.BookID)))
		if raw {
			fmt.Fprintln(out, note.Content)
			return nil
		}
		content, _ := ui.FormatNoteContent(note.Content)
		fmt.Fprint(out, content)
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print content without markdown rendering")
	rootCmd.AddCommand(showCmd)
}
