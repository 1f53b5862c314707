// ABOUTME: List command for displaying notes grouped by book.
// ABOUTME: Supports limiting output to one book or to unfiled notes.

package main

import (
	"fmt"
	"io"

	"github.com/harper/notebook/internal/app"
	"github.com/harper/notebook/internal/models"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes under their books, followed by notes that are in no book.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bookRef, _ := cmd.Flags().GetString("book")
		unfiled, _ := cmd.Flags().GetBool("unfiled")

		if err := controller.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to list notes: %w", err)
		}
		groups := controller.NotesByBook()
		out := cmd.OutOrStdout()

		switch {
		case unfiled:
			printSection(out, ui.FormatUnfiledSectionHeader(), groups.Unfiled, "")
			return nil
		case bookRef != "":
			id, err := resolveBookRef(cmd, bookRef)
			if err != nil {
				return err
			}
			for _, g := range groups.Books {
				if g.Book.ID == id {
					printSection(out, ui.FormatBookSectionHeader(g.Book.Name), g.Notes, g.Book.Name)
				}
			}
			return nil
		}

		if len(controller.State().Notes) == 0 && len(groups.Books) == 0 {
			fmt.Fprintln(out, "No notes found.")
			return nil
		}
		printGrouping(out, groups)
		return nil
	},
}

func printGrouping(out io.Writer, groups app.Grouping) {
	for _, g := range groups.Books {
		printSection(out, ui.FormatBookSectionHeader(g.Book.Name), g.Notes, g.Book.Name)
	}
	if len(groups.Unfiled) > 0 {
		printSection(out, ui.FormatUnfiledSectionHeader(), groups.Unfiled, "")
	}
}

func printSection(out io.Writer, header string, notes []models.NotePreview, book string) {
	fmt.Fprint(out, header)
	if len(notes) == 0 {
		fmt.Fprintln(out, "  (empty)")
		return
	}
	for _, n := range notes {
		fmt.Fprint(out, ui.FormatNoteListItem(n, book))
	}
}

func init() {
	listCmd.Flags().String("book", "", "only notes in this book (id or prefix)")
	listCmd.Flags().Bool("unfiled", false, "only notes in no book")
	rootCmd.AddCommand(listCmd)
}
