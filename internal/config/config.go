package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ameya-wealth/wealth-api/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Redis     RedisConfig     `yaml:"redis" mapstructure:"redis"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Registry  RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Temporal  TemporalConfig  `yaml:"temporal" mapstructure:"temporal"`
	Advisor   AdvisorConfig   `yaml:"advisor" mapstructure:"advisor"`
	CRM       CRMConfig       `yaml:"crm" mapstructure:"crm"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Documents DocumentsConfig `yaml:"documents" mapstructure:"documents"`
	Analytics AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// RedisConfig configures the onboarding session store. Leave Addr empty to
// fall back to the in-memory session store.
type RedisConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	Password   string `yaml:"password" mapstructure:"password"`
	DB         int    `yaml:"db" mapstructure:"db"`
	SessionTTL int    `yaml:"session_ttl_hours" mapstructure:"session_ttl_hours"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// RegistryConfig configures the CKYC and KRA lookup clients. Mock mode
// replaces both with deterministic fakes for local development.
type RegistryConfig struct {
	Mock        bool   `yaml:"mock" mapstructure:"mock"`
	CKYCBaseURL string `yaml:"ckyc_base_url" mapstructure:"ckyc_base_url"`
	CKYCKey     string `yaml:"ckyc_api_key" mapstructure:"ckyc_api_key"`
	KRABaseURL  string `yaml:"kra_base_url" mapstructure:"kra_base_url"`
	KRAKey      string `yaml:"kra_api_key" mapstructure:"kra_api_key"`
}

// TemporalConfig configures the KYC workflow worker. Leave HostPort empty to
// run verification in process.
type TemporalConfig struct {
	HostPort  string `yaml:"host_port" mapstructure:"host_port"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// AdvisorConfig holds Anthropic API settings for the advisor chat.
type AdvisorConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CRMConfig holds Salesforce JWT auth settings for the lead push.
type CRMConfig struct {
	ClientID string `yaml:"client_id" mapstructure:"client_id"`
	Username string `yaml:"username" mapstructure:"username"`
	KeyPath  string `yaml:"key_path" mapstructure:"key_path"`
	LoginURL string `yaml:"login_url" mapstructure:"login_url"`
}

// NotionConfig holds Notion API credentials for the questionnaire sync.
type NotionConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	QuestionDB string `yaml:"question_db" mapstructure:"question_db"`
}

// CatalogConfig points at an optional questionnaire override file.
type CatalogConfig struct {
	OverridePath string `yaml:"override_path" mapstructure:"override_path"`
}

// DocumentsConfig configures KYC document blob storage.
type DocumentsConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	MaxSizeMB int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
}

// AnalyticsConfig tunes the funnel event dispatcher.
type AnalyticsConfig struct {
	BufferSize    int `yaml:"buffer_size" mapstructure:"buffer_size"`
	BatchSize     int `yaml:"batch_size" mapstructure:"batch_size"`
	FlushInterval int `yaml:"flush_interval_secs" mapstructure:"flush_interval_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Validate checks that the fields required for the given run mode are set.
// Modes: "serve" (full API server), "worker" (Temporal KYC worker),
// "catalog-sync" (Notion questionnaire sync), "migrate", "funnel".
func (c *Config) Validate(mode string) error {
	var missing []string

	requireDB := func() {
		if c.Store.DatabaseURL == "" && c.Store.Driver != "sqlite" {
			missing = append(missing, "store.database_url is required")
		}
	}

	switch mode {
	case "serve":
		requireDB()
		if c.Server.Port <= 0 {
			missing = append(missing, "server.port must be > 0")
		}
		if !c.Registry.Mock {
			if c.Registry.CKYCKey == "" {
				missing = append(missing, "registry.ckyc_api_key is required when registry.mock is off")
			}
			if c.Registry.KRAKey == "" {
				missing = append(missing, "registry.kra_api_key is required when registry.mock is off")
			}
		}
		if c.Documents.MaxSizeMB <= 0 {
			missing = append(missing, "documents.max_size_mb must be > 0")
		}
		if c.Analytics.BatchSize <= 0 || c.Analytics.BufferSize <= 0 {
			missing = append(missing, "analytics buffer_size and batch_size must be > 0")
		}
	case "worker":
		requireDB()
		if c.Temporal.HostPort == "" {
			missing = append(missing, "temporal.host_port is required")
		}
		if !c.Registry.Mock && (c.Registry.CKYCKey == "" || c.Registry.KRAKey == "") {
			missing = append(missing, "registry api keys are required when registry.mock is off")
		}
	case "catalog-sync":
		if c.Notion.Token == "" {
			missing = append(missing, "notion.token is required")
		}
		if c.Notion.QuestionDB == "" {
			missing = append(missing, "notion.question_db is required")
		}
	case "migrate", "funnel":
		requireDB()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(missing) > 0 {
		return eris.New("config: " + strings.Join(missing, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("WEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "postgres")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl_hours", 24)
	v.SetDefault("registry.mock", true)
	v.SetDefault("registry.ckyc_base_url", "https://api.ckyc.example.in")
	v.SetDefault("registry.kra_base_url", "https://api.kra.example.in")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("advisor.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("advisor.max_tokens", 1024)
	v.SetDefault("crm.login_url", "https://login.salesforce.com")
	v.SetDefault("documents.dir", "documents")
	v.SetDefault("documents.max_size_mb", 10)
	v.SetDefault("analytics.buffer_size", 4096)
	v.SetDefault("analytics.batch_size", 100)
	v.SetDefault("analytics.flush_interval_secs", 2)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
