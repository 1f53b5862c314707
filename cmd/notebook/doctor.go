// ABOUTME: Doctor command that checks note and book consistency.
// ABOUTME: With --repair it fixes what it finds in one transaction.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check notes and books for consistency problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fix, _ := cmd.Flags().GetBool("repair")
		out := cmd.OutOrStdout()

		if fix {
			report, err := notebook.Repair(ctx)
			if err != nil {
				return err
			}
			for _, v := range report.Before {
				fmt.Fprint(out, ui.FormatViolation(v))
			}
			if !report.Changed() {
				fmt.Fprintln(out, ui.Success("Notebook is consistent."))
				return nil
			}
			fmt.Fprintln(out, ui.Success(fmt.Sprintf(
				"Repaired: %d duplicate notes, %d duplicate books, %d notes unfiled, %d books rebuilt, %d timestamps clamped",
				report.DroppedNotes, report.DroppedBooks, len(report.Unfiled), len(report.Rebuilt), len(report.Clamped))))
			return nil
		}

		snap, err := notebook.Snapshot(ctx)
		if err != nil {
			return err
		}
		violations := repo.Check(snap)
		if len(violations) == 0 {
			fmt.Fprintln(out, ui.Success("Notebook is consistent."))
			return nil
		}
		for _, v := range violations {
			fmt.Fprint(out, ui.FormatViolation(v))
		}
		return fmt.Errorf("found %d problems, run doctor --repair to fix them", len(violations))
	},
}

func init() {
	doctorCmd.Flags().Bool("repair", false, "fix the problems found")
	rootCmd.AddCommand(doctorCmd)
}
