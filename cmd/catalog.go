package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/catalog"
	"github.com/ameya-wealth/wealth-api/pkg/notion"
)

var catalogOut string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Questionnaire catalog tools",
}

var catalogSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the question catalog from Notion",
	Long: `Pulls the Active rows of the Question Catalog database from Notion,
validates them, and optionally writes the result as an override file that
serve loads at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("catalog-sync"); err != nil {
			return err
		}

		ctx := cmd.Context()
		client := notion.NewClient(cfg.Notion.Token)

		if err := catalog.SyncFromNotion(ctx, client, cfg.Notion.QuestionDB); err != nil {
			return err
		}

		out := catalogOut
		if out == "" {
			out = cfg.Catalog.OverridePath
		}
		if out != "" {
			if err := catalog.SaveOverrideFile(out); err != nil {
				return err
			}
			zap.L().Info("catalog written", zap.String("path", out))
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the compiled-in catalog plus any override file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadCatalogOverride(); err != nil {
			return err
		}
		if err := catalog.Validate(); err != nil {
			return err
		}
		zap.L().Info("catalog is valid")
		return nil
	},
}

func init() {
	catalogSyncCmd.Flags().StringVar(&catalogOut, "out", "", "write the synced catalog to this file (default catalog.override_path)")
	catalogCmd.AddCommand(catalogSyncCmd, catalogValidateCmd)
	rootCmd.AddCommand(catalogCmd)
}
