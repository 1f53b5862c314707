// ABOUTME: Import command for restoring notes from a backup.
// ABOUTME: Reads JSON exports, browser storage dumps, and markdown directories.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/transfer"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON export, a browser storage dump, or a directory of markdown files.
Existing notes and books are kept unless --replace is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		replace, _ := cmd.Flags().GetBool("replace")
		pattern, _ := cmd.Flags().GetString("pattern")
		force, _ := cmd.Flags().GetBool("force")

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		var snap repo.Snapshot
		var problems []string
		if info.IsDir() {
			snap, problems, err = transfer.ReadMarkdown(os.DirFS(path), pattern, time.Now().UTC())
		} else {
			f, openErr := os.Open(path) //nolint:gosec // User-specified file path is expected CLI behavior
			if openErr != nil {
				return openErr
			}
			defer func() { _ = f.Close() }()
			snap, problems, err = transfer.ReadJSON(f)
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		out := cmd.OutOrStdout()
		for _, p := range problems {
			fmt.Fprintf(out, "Warning: %s\n", p)
		}

		mode := repo.ImportMerge
		if replace {
			mode = repo.ImportReplace
			if !force && !confirm(cmd, "Replace every existing note and book?") {
				fmt.Fprintln(out, "Cancelled.")
				return nil
			}
		}

		report, err := notebook.Import(cmd.Context(), snap, mode)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Imported %d notes and %d books (%s)", report.NotesAdded, report.BooksAdded, mode)))
		if report.NotesSkipped > 0 || report.BooksSkipped > 0 {
			fmt.Fprintf(out, "Skipped %d notes and %d books already present\n", report.NotesSkipped, report.BooksSkipped)
		}
		if report.Repair.Changed() {
			fmt.Fprintf(out, "Repaired %d consistency problems\n", len(report.Repair.Before))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("replace", false, "discard existing notes and books first")
	importCmd.Flags().String("pattern", transfer.DefaultPattern, "glob of markdown files to read from a directory")
	importCmd.Flags().BoolP("force", "f", false, "skip confirmation for --replace")
	rootCmd.AddCommand(importCmd)
}
