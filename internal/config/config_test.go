package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 24, cfg.Redis.SessionTTL)
	assert.True(t, cfg.Registry.Mock)
	assert.Equal(t, "https://api.ckyc.example.in", cfg.Registry.CKYCBaseURL)
	assert.Equal(t, "https://api.kra.example.in", cfg.Registry.KRABaseURL)
	assert.Equal(t, "default", cfg.Temporal.Namespace)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Advisor.Model)
	assert.Equal(t, 1024, cfg.Advisor.MaxTokens)
	assert.Equal(t, "https://login.salesforce.com", cfg.CRM.LoginURL)
	assert.Equal(t, "documents", cfg.Documents.Dir)
	assert.Equal(t, 10, cfg.Documents.MaxSizeMB)
	assert.Equal(t, 4096, cfg.Analytics.BufferSize)
	assert.Equal(t, 100, cfg.Analytics.BatchSize)
	assert.Equal(t, 2, cfg.Analytics.FlushInterval)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
  database_url: wealth.db
log:
  level: debug
  format: console
server:
  port: 9090
registry:
  mock: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "wealth.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Registry.Mock)
	// Defaults still apply for unset values
	assert.Equal(t, 100, cfg.Analytics.BatchSize)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("WEALTH_STORE_DRIVER", "postgres")
	t.Setenv("WEALTH_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("WEALTH_SERVER_PORT", "3000")
	t.Setenv("WEALTH_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with the fields a serve run needs.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.DatabaseURL = "postgres://localhost/wealth"
	cfg.Server.Port = 8080
	cfg.Registry.Mock = true
	cfg.Documents.MaxSizeMB = 10
	cfg.Analytics.BufferSize = 4096
	cfg.Analytics.BatchSize = 100
	return cfg
}

func TestValidateServe_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidateServe_MissingDB(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.DatabaseURL = ""

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateServe_SQLiteNeedsNoURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = ""

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port must be > 0")
}

func TestValidateServe_RealRegistriesNeedKeys(t *testing.T) {
	cfg := validDefaults()
	cfg.Registry.Mock = false

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "registry.ckyc_api_key is required")
	assert.Contains(t, err.Error(), "registry.kra_api_key is required")

	cfg.Registry.CKYCKey = "ckyc-key"
	cfg.Registry.KRAKey = "kra-key"
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateWorker(t *testing.T) {
	cfg := validDefaults()

	err := cfg.Validate("worker")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "temporal.host_port is required")

	cfg.Temporal.HostPort = "localhost:7233"
	assert.NoError(t, cfg.Validate("worker"))
}

func TestValidateCatalogSync(t *testing.T) {
	cfg := validDefaults()

	err := cfg.Validate("catalog-sync")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "notion.token is required")
	assert.Contains(t, err.Error(), "notion.question_db is required")

	cfg.Notion.Token = "ntn_token"
	cfg.Notion.QuestionDB = "question-db-id"
	assert.NoError(t, cfg.Validate("catalog-sync"))
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
