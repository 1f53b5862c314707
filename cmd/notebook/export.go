// ABOUTME: Export command for backing up notes and books.
// ABOUTME: Supports a JSON export file and a markdown directory per book.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harper/notebook/internal/transfer"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes and books to JSON, or to a directory of markdown files with one subdirectory per book.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		snap, err := notebook.Snapshot(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read notebook: %w", err)
		}

		switch format {
		case "json":
			var w io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath) //nolint:gosec // User-specified output path is expected CLI behavior
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := transfer.WriteJSON(w, transfer.NewExport(snap, time.Now().UTC())); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			if outputPath != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d notes and %d books to %s", len(snap.Notes), len(snap.Books), outputPath)))
			}
			return nil
		case "md", "markdown":
			if outputPath == "" {
				return fmt.Errorf("--output directory is required for markdown export")
			}
			count, err := transfer.WriteMarkdown(outputPath, snap)
			if err != nil {
				return fmt.Errorf("failed to write markdown: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Exported %d notes to %s", count, outputPath)))
			return nil
		default:
			return fmt.Errorf("unknown format %q (want json or md)", format)
		}
	},
}

func init() {
	exportCmd.Flags().StringP("format", "F", "json", "export format: json or md")
	exportCmd.Flags().StringP("output", "o", "", "output file (json) or directory (md)")
	rootCmd.AddCommand(exportCmd)
}
