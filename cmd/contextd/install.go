package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mentorhub/contextd/internal/config"
	"github.com/mentorhub/contextd/pkg/log"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Create the runtime directory and a default .env file",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0o755); err != nil {
			return err
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil {
			logger.Info().Str("path", envPath).Msg(".env already exists, leaving it untouched")
			return nil
		}

		defaults := map[string]string{
			"ENABLE_HTTP":          "true",
			"ENABLE_MCP":           "false",
			"HTTP_ADDR":            ":8085",
			"CONTEXT_TOKEN_BUDGET": "1500",
			"CONTEXT_CACHE_TTL":    "5m",
		}
		if err := godotenv.Write(defaults, envPath); err != nil {
			return err
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Installation complete! You can now run 'contextd start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
