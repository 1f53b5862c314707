// ABOUTME: Book commands for creating, renaming, listing, and removing books.
// ABOUTME: Removing a book keeps its notes and leaves them in no book.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage books",
}

var bookAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new book",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		book, err := controller.CreateBook(cmd.Context(), name)
		if err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Created book %s (%s)", ui.ShortID(book.ID), book.Name)))
		return nil
	},
}

var bookRenameCmd = &cobra.Command{
	Use:   "rename <id-prefix> <name>",
	Short: "Rename a book",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveBookRef(cmd, args[0])
		if err != nil {
			return err
		}
		book, err := controller.RenameBook(cmd.Context(), id, args[1])
		if err != nil {
			return fmt.Errorf("failed to rename book: %w", err)
		}
		if book == nil {
			return repo.ErrBookNotFound
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Book %s is now %s", ui.ShortID(book.ID), book.Name)))
		return nil
	},
}

var bookRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a book",
	Long:  `Delete a book. Its notes are kept and move to No Book.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		force, _ := cmd.Flags().GetBool("force")

		id, err := resolveBookRef(cmd, args[0])
		if err != nil {
			return err
		}
		book, err := notebook.GetBookByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get book: %w", err)
		}
		if book == nil {
			return repo.ErrBookNotFound
		}

		question := fmt.Sprintf("Delete book %q (%s)? Its %d notes will move to No Book.", book.Name, ui.ShortID(book.ID), len(book.Notes))
		if !force && !confirm(cmd, question) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := controller.DeleteBook(ctx, id); err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Deleted book %s", ui.ShortID(id))))
		return nil
	},
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List books",
	RunE: func(cmd *cobra.Command, args []string) error {
		books, err := notebook.ListBooks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list books: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(books) == 0 {
			fmt.Fprintln(out, "No books found.")
			return nil
		}
		for _, b := range books {
			fmt.Fprint(out, ui.FormatBookListItem(b))
		}
		return nil
	},
}

func init() {
	bookRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	bookCmd.AddCommand(bookAddCmd, bookRenameCmd, bookRmCmd, bookListCmd)
	rootCmd.AddCommand(bookCmd)
}
