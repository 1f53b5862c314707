// ABOUTME: Version and config commands.
// ABOUTME: Neither needs the store, so both skip opening it.

package main

import (
	"fmt"

	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func skipStore(cmd *cobra.Command, args []string) error { return nil }

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: skipStore,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "notebook %s (commit %s, built %s)\n", version, commit, date)
	},
}

var configCmd = &cobra.Command{
	Use:               "config",
	Short:             "Show the effective configuration",
	PersistentPreRunE: skipStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(loaded)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", config.ConfigPath())
		fmt.Fprint(out, string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if config.ConfigExists() && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", config.ConfigPath())
		}
		if err := config.SaveConfig(config.DefaultConfig()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Wrote "+config.ConfigPath()))
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(versionCmd, configCmd)
}
