package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wealth-api",
	Short: "Investor onboarding and advisory backend",
	Long:  "Runs the onboarding questionnaire, investor profiling, KYC verification saga, SIP recommendations and funnel analytics for the wealth platform.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
