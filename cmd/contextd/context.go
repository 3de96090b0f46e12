package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mentorhub/contextd/internal/config"
	"github.com/mentorhub/contextd/internal/service/ui"
)

var contextCmd = &cobra.Command{
	Use:   "context <tenant-id>",
	Short: "Print the assembled business context block for a tenant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		comp := newComponents(ctx, config.NewAppConfig(ctx))
		defer func() {
			for _, c := range comp.cleanup {
				_ = c.Shutdown(ctx)
			}
		}()

		block, err := comp.builder.Build(ctx, args[0])
		if err != nil {
			return err
		}
		if block == "" {
			fmt.Println(ui.DescStyle.Render("no business context recorded for tenant " + args[0]))
			return nil
		}

		fmt.Print(block)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contextCmd)
}
