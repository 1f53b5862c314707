// ABOUTME: Serve command running the HTTP API.
// ABOUTME: Shuts down cleanly on interrupt or terminate signals.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/notebook/internal/httpapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notebook over HTTP",
	Long:  `Run the JSON API used by the web front end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		// Request logs are info level, so serve shows them unless asked not to.
		if !cmd.Flags().Changed("log-level") && logger.GetLevel() > zerolog.InfoLevel {
			logger = logger.Level(zerolog.InfoLevel)
		}

		ctx, stop := signalContext(cmd)
		defer stop()

		if err := controller.Load(ctx); err != nil {
			logger.Warn().Err(err).Msg("starting with an empty view")
		}

		router := httpapi.NewRouter(&httpapi.Deps{
			Controller: controller,
			Reader:     notebook,
			Logger:     logger,
		})
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
		if err := httpapi.Serve(ctx, addr, router, logger); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

// signalContext is cmd's context, canceled on interrupt or terminate.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
