// Package config loads and validates application configuration from YAML files
// and environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Auth          AuthConfig          `yaml:"auth"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Presentation  PresentationConfig  `yaml:"presentation"`
	History       HistoryConfig       `yaml:"history"`
	Rates         RatesConfig         `yaml:"rates"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig describes HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	HandlerTimeout  time.Duration `yaml:"handler_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            CORSConfig    `yaml:"cors"`
}

// CORSConfig describes Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// AuthConfig describes the optional JWT layer. When disabled, history is
// scoped by the client session header instead of a token subject.
type AuthConfig struct {
	Enabled       bool     `yaml:"enabled"`
	Issuer        string   `yaml:"issuer"`
	Audience      string   `yaml:"audience"`
	SigningKeyEnv string   `yaml:"signing_key_env"`
	Algorithms    []string `yaml:"algorithms"`
	SessionHeader string   `yaml:"session_header"`
}

// CatalogConfig describes catalogue data sources.
type CatalogConfig struct {
	TaxRegimesFile string `yaml:"tax_regimes_file"`
}

// PresentationConfig describes result formatting defaults.
type PresentationConfig struct {
	DefaultLocale  string `yaml:"default_locale"`
	CurrencySymbol string `yaml:"currency_symbol"`
}

// HistoryConfig describes history persistence settings.
type HistoryConfig struct {
	Driver          string        `yaml:"driver"` // memory, file, or postgres
	FilePath        string        `yaml:"file_path"`
	DSNEnv          string        `yaml:"dsn_env"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RatesConfig describes the live exchange-rate service.
type RatesConfig struct {
	Enabled       bool             `yaml:"enabled"`
	FiatURL       string           `yaml:"fiat_url"`
	CryptoURL     string           `yaml:"crypto_url"`
	FetchTimeout  time.Duration    `yaml:"fetch_timeout"`
	PollInterval  time.Duration    `yaml:"poll_interval"`
	MaxAge        time.Duration    `yaml:"max_age"`
	Cache         RatesCacheConfig `yaml:"cache"`
}

// RatesCacheConfig describes the optional redis snapshot tier.
type RatesCacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	AddrEnv string        `yaml:"addr_env"`
	DB      int           `yaml:"db"`
	TTL     time.Duration `yaml:"ttl"`
}

// ObservabilityConfig describes logging, tracing, and metrics settings.
type ObservabilityConfig struct {
	LogLevel string        `yaml:"log_level"`
	Tracing  TracingConfig `yaml:"tracing"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// TracingConfig describes distributed tracing settings.
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	Endpoint     string  `yaml:"endpoint"`
	SamplingRate float64 `yaml:"sampling_rate"`
}

// MetricsConfig describes Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Defaults returns a Config with sensible default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			HandlerTimeout:  25 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			CORS: CORSConfig{
				AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
				AllowedHeaders: []string{"Authorization", "Content-Type",
					"X-Session-Id", "X-Correlation-Id"},
				MaxAge: 86400,
			},
		},
		Auth: AuthConfig{
			Algorithms:    []string{"HS256"},
			SigningKeyEnv: "CALCHUB_JWT_SIGNING_KEY",
			SessionHeader: "X-Session-Id",
		},
		Catalog: CatalogConfig{
			TaxRegimesFile: "configs/tax_regimes.yaml",
		},
		Presentation: PresentationConfig{
			DefaultLocale:  "en-IN",
			CurrencySymbol: "₹",
		},
		History: HistoryConfig{
			Driver:          "file",
			FilePath:        "data/history.json",
			DSNEnv:          "CALCHUB_HISTORY_DSN",
			MaxOpenConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Rates: RatesConfig{
			Enabled:      true,
			FetchTimeout: 10 * time.Second,
			PollInterval: 60 * time.Second,
			MaxAge:       5 * time.Minute,
			Cache: RatesCacheConfig{
				AddrEnv: "CALCHUB_REDIS_ADDR",
				TTL:     time.Hour,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
			Tracing: TracingConfig{
				Exporter:     "otlp",
				SamplingRate: 0.1,
			},
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}

// Load reads a YAML config file, applies environment variable overrides,
// and validates required fields.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 1 and 65535")
	}
	if c.Catalog.TaxRegimesFile == "" {
		errs = append(errs, "catalog.tax_regimes_file is required")
	}
	switch c.History.Driver {
	case "memory", "postgres":
	case "file":
		if c.History.FilePath == "" {
			errs = append(errs, "history.file_path is required for the file driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("history.driver %q is not one of memory, file, postgres", c.History.Driver))
	}
	if c.Auth.Enabled {
		if c.Auth.Issuer == "" {
			errs = append(errs, "auth.issuer is required when auth is enabled")
		}
		if c.Auth.Audience == "" {
			errs = append(errs, "auth.audience is required when auth is enabled")
		}
	}
	if c.Rates.Enabled && c.Rates.PollInterval < time.Second {
		errs = append(errs, "rates.poll_interval must be at least 1s")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// applyEnvOverrides reads CALCHUB_* environment variables and overrides
// config values. Only the most commonly overridden fields are supported.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CALCHUB_SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("CALCHUB_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("CALCHUB_HISTORY_DRIVER"); v != "" {
		cfg.History.Driver = v
	}
	if v := os.Getenv("CALCHUB_HISTORY_FILE"); v != "" {
		cfg.History.FilePath = v
	}
	if v := os.Getenv("CALCHUB_TAX_REGIMES_FILE"); v != "" {
		cfg.Catalog.TaxRegimesFile = v
	}
	if v := os.Getenv("CALCHUB_DEFAULT_LOCALE"); v != "" {
		cfg.Presentation.DefaultLocale = v
	}
	if v := os.Getenv("CALCHUB_AUTH_ENABLED"); v != "" {
		cfg.Auth.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
}
