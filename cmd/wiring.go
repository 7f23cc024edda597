package main

import (
	"context"
	"os"
	"time"

	salesforce "github.com/k-capehart/go-salesforce/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	temporalclient "go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/catalog"
	"github.com/ameya-wealth/wealth-api/internal/kyc"
	"github.com/ameya-wealth/wealth-api/internal/onboarding"
	"github.com/ameya-wealth/wealth-api/internal/store"
	"github.com/ameya-wealth/wealth-api/pkg/registry"
	sfpkg "github.com/ameya-wealth/wealth-api/pkg/salesforce"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "wealth.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initSessions picks Redis when an address is configured, otherwise the
// in-memory store. Memory sessions do not survive a restart; fine for dev.
func initSessions() onboarding.SessionStore {
	ttl := time.Duration(cfg.Redis.SessionTTL) * time.Hour
	if cfg.Redis.Addr == "" {
		zap.L().Info("using in-memory session store")
		return onboarding.NewMemoryStore(ttl)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return onboarding.NewRedisStore(client, ttl)
}

func initRegistries() (ckyc, kra registry.Client) {
	if cfg.Registry.Mock {
		zap.L().Warn("registry mock mode enabled; KYC lookups are simulated")
		return registry.NewMockClient(registry.SourceCKYC), registry.NewMockClient(registry.SourceKRA)
	}
	ckyc = registry.NewHTTPClient(registry.SourceCKYC, cfg.Registry.CKYCBaseURL, cfg.Registry.CKYCKey)
	kra = registry.NewHTTPClient(registry.SourceKRA, cfg.Registry.KRABaseURL, cfg.Registry.KRAKey)
	return ckyc, kra
}

// initTemporal dials the workflow engine. A missing host_port is not an
// error; the KYC saga then runs in process.
func initTemporal() (temporalclient.Client, error) {
	if cfg.Temporal.HostPort == "" {
		return nil, nil
	}
	c, err := temporalclient.Dial(temporalclient.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return nil, eris.Wrap(err, "dial temporal")
	}
	return c, nil
}

func initKYC(st store.Store, temporal temporalclient.Client) *kyc.Service {
	ckyc, kra := initRegistries()
	return kyc.NewService(kyc.NewOrchestrator(st, ckyc, kra), temporal)
}

func initSalesforce() (sfpkg.Client, error) {
	if cfg.CRM.ClientID == "" {
		return nil, nil
	}

	pemData, err := os.ReadFile(cfg.CRM.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.CRM.LoginURL,
		Username:       cfg.CRM.Username,
		ConsumerKey:    cfg.CRM.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}

// loadCatalogOverride swaps in a questionnaire file when one is configured.
func loadCatalogOverride() error {
	if cfg.Catalog.OverridePath == "" {
		return nil
	}
	if err := catalog.LoadOverrideFile(cfg.Catalog.OverridePath); err != nil {
		return eris.Wrap(err, "load catalog override")
	}
	zap.L().Info("loaded questionnaire override", zap.String("path", cfg.Catalog.OverridePath))
	return nil
}
