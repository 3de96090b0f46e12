package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mentorhub/contextd/pkg/log"
	"github.com/mentorhub/contextd/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the contextd services",
	Long:  `Initializes storage and starts the configured transports (HTTP API, MCP stdio).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting contextd")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("contextd has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
