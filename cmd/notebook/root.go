// ABOUTME: Root command wiring configuration, logging, and storage.
// ABOUTME: Opens the key-value medium before each command and closes it after.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harper/notebook/internal/app"
	"github.com/harper/notebook/internal/config"
	"github.com/harper/notebook/internal/logging"
	"github.com/harper/notebook/internal/repo"
	"github.com/harper/notebook/internal/store"
	"github.com/harper/notebook/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	logger     = zerolog.Nop()
	kvStore    store.KV
	notebook   *repo.Repository
	controller *app.Controller
)

var rootCmd = &cobra.Command{
	Use:           "notebook",
	Short:         "Markdown notes organized into books",
	Long:          `Keep markdown notes, file them into books, and find #todo and #link lines across everything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return openNotebook(cmd)
	},
}

// Execute runs the root command and always releases the store.
func Execute() error {
	defer closeNotebook()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), ui.Error(err.Error()))
	}
	return err
}

func openNotebook(cmd *cobra.Command) error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		loaded.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("backend") {
		loaded.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("encoding") {
		loaded.Encoding, _ = flags.GetString("encoding")
	}
	if flags.Changed("log-level") {
		loaded.LogLevel, _ = flags.GetString("log-level")
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	codec, err := store.CodecFor(cfg.Encoding)
	if err != nil {
		return err
	}

	kv, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	kvStore = kv

	notebook = repo.New(kvStore, repo.WithLogger(logger), repo.WithCodec(codec))
	controller = app.NewController(notebook, app.WithLogger(logger))
	logger.Debug().Str("backend", cfg.Backend).Str("encoding", cfg.Encoding).Msg("notebook opened")
	return nil
}

func openStore(c *config.Config, log zerolog.Logger) (store.KV, error) {
	switch c.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendCharm:
		return store.OpenCharm(
			store.WithCharmHost(c.CharmHost),
			store.WithAutoSync(c.AutoSync),
		), nil
	default:
		kv, err := store.OpenBadger(c.DataDir, store.WithBadgerLogger(logging.Badger(log)))
		if err != nil {
			return nil, fmt.Errorf("failed to open notebook at %s: %w", c.DataDir, err)
		}
		return kv, nil
	}
}

func closeNotebook() {
	if kvStore == nil {
		return
	}
	if err := kvStore.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close store")
	}
	kvStore = nil
	notebook = nil
	controller = nil
}

// confirm asks a yes/no question on cmd's streams. Anything but y or yes is no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir(), "directory holding the badger database")
	rootCmd.PersistentFlags().String("backend", config.BackendBadger, "storage backend: badger, charm, or memory")
	rootCmd.PersistentFlags().String("encoding", config.EncodingJSON, "stored collection format: json or cbor")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
}
