// ABOUTME: Sync command for the charm backend.
// ABOUTME: Pushes and pulls the notebook collections on demand.

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/store"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync with the charm server",
	Long: `Sync the notebook with a charm server. Only the charm backend syncs;
with auto_sync enabled this already happens after every change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ch, ok := kvStore.(*store.Charm)
		if !ok {
			return fmt.Errorf("sync needs the %s backend (current: %s)", config.BackendCharm, cfg.Backend)
		}
		if err := ch.Sync(); err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Synced"))
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Sync Status")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "Backend:   %s\n", cfg.Backend)
		if cfg.CharmHost != "" {
			fmt.Fprintf(out, "Host:      %s\n", cfg.CharmHost)
		} else {
			fmt.Fprintf(out, "Host:      %s\n", color.New(color.Faint).Sprint("(default: cloud.charm.sh)"))
		}
		if cfg.AutoSync {
			fmt.Fprintf(out, "Auto-sync: %s\n", color.GreenString("enabled"))
		} else {
			fmt.Fprintf(out, "Auto-sync: %s\n", color.YellowString("disabled"))
		}
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
