package main

import (
	"fmt"

	"github.com/sandevgo/recapbot/internal/config"
	"github.com/sandevgo/recapbot/pkg/env"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration in .env format",
	Long:  `Renders the non-secret runtime settings as .env lines, useful for seeding or reviewing the runtime directory. Tokens and API keys are never printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		digestCfg := config.NewDigestConfig(ctx)

		for _, cfg := range []any{appCfg, digestCfg} {
			out, err := env.MarshalEnv(cfg)
			if err != nil {
				return fmt.Errorf("render config: %w", err)
			}
			cmd.Print(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
