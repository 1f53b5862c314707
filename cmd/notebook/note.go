// ABOUTME: Note commands for creating, editing, moving, and removing notes.
// ABOUTME: Ids may be given as unique prefixes of six or more characters.

package main

import (
	"fmt"
	"strings"

	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new note",
	Long:  `Create a note, optionally inside a book. Content can be provided via --content, --file, or --editor.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		bookRef, _ := cmd.Flags().GetString("book")
		useEditor, _ := cmd.Flags().GetBool("editor")

		bookID, err := resolveBookRef(cmd, bookRef)
		if err != nil {
			return err
		}

		content, hasContent, err := readContent(cmd)
		if err != nil {
			return err
		}
		if !hasContent && useEditor {
			content, err = openEditor(cmd, "")
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			hasContent = true
		}

		var fields repo.NoteUpdate
		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			fields.Title = &args[0]
		}
		if hasContent {
			fields.Content = &content
		}

		note, err := controller.CreateNoteWith(ctx, bookID, fields)
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Created note %s", ui.ShortID(note.ID))))
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long:  `Change a note's title or content. Without --title, --content, or --file the content opens in $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id, err := resolveNoteRef(cmd, args[0])
		if err != nil {
			return err
		}

		var u repo.NoteUpdate
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			u.Title = &title
		}
		content, hasContent, err := readContent(cmd)
		if err != nil {
			return err
		}
		if hasContent {
			u.Content = &content
		}

		if u.Title == nil && u.Content == nil {
			note, err := notebook.GetNoteByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			if note == nil {
				return repo.ErrNoteNotFound
			}
			edited, err := openEditor(cmd, note.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if edited == note.Content {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes made.")
				return nil
			}
			u.Content = &edited
		}

		note, err := controller.Edit(ctx, id, u)
		if err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}
		if note == nil {
			return repo.ErrNoteNotFound
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Updated note %s", ui.ShortID(note.ID))))
		return nil
	},
}

var noteRenameCmd = &cobra.Command{
	Use:   "rename <id-prefix> <title>",
	Short: "Rename a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveNoteRef(cmd, args[0])
		if err != nil {
			return err
		}
		note, err := controller.RenameNote(cmd.Context(), id, args[1])
		if err != nil {
			return fmt.Errorf("failed to rename note: %w", err)
		}
		if note == nil {
			return repo.ErrNoteNotFound
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Renamed note %s to %q", ui.ShortID(note.ID), note.Title)))
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a note",
	Long:  `Delete a note and take it out of its book.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		force, _ := cmd.Flags().GetBool("force")

		id, err := resolveNoteRef(cmd, args[0])
		if err != nil {
			return err
		}
		note, err := notebook.GetNoteByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}
		if note == nil {
			return repo.ErrNoteNotFound
		}

		if !force && !confirm(cmd, fmt.Sprintf("Delete note %q (%s)?", note.Title, ui.ShortID(note.ID))) {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}

		if err := controller.DeleteNote(ctx, id); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Deleted note %s", ui.ShortID(id))))
		return nil
	},
}

var noteMvCmd = &cobra.Command{
	Use:   "mv <id-prefix> [book-id-prefix]",
	Short: "Move a note into a book",
	Long:  `File a note under a book. Omit the book to take the note out of any book.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := resolveNoteRef(cmd, args[0])
		if err != nil {
			return err
		}
		bookID := ""
		if len(args) == 2 {
			if bookID, err = resolveBookRef(cmd, args[1]); err != nil {
				return err
			}
		}

		if err := controller.MoveNote(cmd.Context(), id, bookID); err != nil {
			return fmt.Errorf("failed to move note: %w", err)
		}

		if bookID == "" {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Moved note %s to No Book", ui.ShortID(id))))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Moved note %s to %s", ui.ShortID(id), bookName(cmd, bookID))))
		return nil
	},
}

func resolveNoteRef(cmd *cobra.Command, ref string) (string, error) {
	id, err := notebook.ResolveNoteID(cmd.Context(), ref)
	if err != nil {
		return "", fmt.Errorf("note %q: %w", ref, err)
	}
	return id, nil
}

// resolveBookRef maps an optional book reference to an id. Empty means no book.
func resolveBookRef(cmd *cobra.Command, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", nil
	}
	id, err := notebook.ResolveBookID(cmd.Context(), ref)
	if err != nil {
		return "", fmt.Errorf("book %q: %w", ref, err)
	}
	return id, nil
}

func bookName(cmd *cobra.Command, id string) string {
	if id == "" {
		return ""
	}
	book, err := notebook.GetBookByID(cmd.Context(), id)
	if err != nil || book == nil {
		return ""
	}
	return book.Name
}

func init() {
	noteAddCmd.Flags().String("book", "", "book id or prefix to file the note under")
	noteAddCmd.Flags().String("content", "", "note content (inline)")
	noteAddCmd.Flags().String("file", "", "read content from file")
	noteAddCmd.Flags().Bool("editor", false, "write the content in $EDITOR")

	noteEditCmd.Flags().String("title", "", "new title")
	noteEditCmd.Flags().String("content", "", "new content (inline)")
	noteEditCmd.Flags().String("file", "", "read new content from file")

	noteRmCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	noteCmd.AddCommand(noteAddCmd, noteEditCmd, noteRenameCmd, noteRmCmd, noteMvCmd)
	rootCmd.AddCommand(noteCmd)
}
