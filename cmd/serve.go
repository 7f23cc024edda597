package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/advisor"
	"github.com/ameya-wealth/wealth-api/internal/analytics"
	"github.com/ameya-wealth/wealth-api/internal/crm"
	"github.com/ameya-wealth/wealth-api/internal/server"
	"github.com/ameya-wealth/wealth-api/internal/storage"
	"github.com/ameya-wealth/wealth-api/pkg/anthropic"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the onboarding API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}
		if err := loadCatalogOverride(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		dispatcher := analytics.NewDispatcher(st,
			analytics.WithBufferSize(cfg.Analytics.BufferSize),
			analytics.WithBatchSize(cfg.Analytics.BatchSize),
			analytics.WithFlushInterval(time.Duration(cfg.Analytics.FlushInterval)*time.Second),
		)
		defer dispatcher.Close()

		temporal, err := initTemporal()
		if err != nil {
			return err
		}
		if temporal != nil {
			defer temporal.Close()
		}

		deps := server.Deps{
			Store:    st,
			Sessions: initSessions(),
			Emitter:  dispatcher,
			KYC:      initKYC(st, temporal),
		}

		if cfg.Advisor.Key != "" {
			deps.Advisor = advisor.New(
				anthropic.NewClient(cfg.Advisor.Key),
				st,
				cfg.Advisor.Model,
				cfg.Advisor.MaxTokens,
			)
		} else {
			zap.L().Warn("advisor key not set; chat endpoint disabled")
		}

		sf, err := initSalesforce()
		if err != nil {
			return err
		}
		if sf != nil {
			deps.CRM = crm.NewPusher(sf)
		} else {
			zap.L().Info("salesforce not configured; lead push disabled")
		}

		blobs, err := storage.NewLocal(cfg.Documents.Dir, cfg.Documents.MaxSizeMB)
		if err != nil {
			return err
		}
		deps.Blobs = blobs

		srv := server.New(deps, server.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			MaxUploadBytes: int64(cfg.Documents.MaxSizeMB) << 20,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		return srv.Run(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
