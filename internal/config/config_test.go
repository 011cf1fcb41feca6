package config

import (
	"testing"
	"time"
)

func TestLoad_valid(t *testing.T) {
	cfg, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Catalog.TaxRegimesFile != "testdata/tax_regimes.yaml" {
		t.Errorf("Catalog.TaxRegimesFile = %q", cfg.Catalog.TaxRegimesFile)
	}
	if cfg.Presentation.DefaultLocale != "en-US" {
		t.Errorf("Presentation.DefaultLocale = %q", cfg.Presentation.DefaultLocale)
	}
	if cfg.Presentation.CurrencySymbol != "$" {
		t.Errorf("Presentation.CurrencySymbol = %q", cfg.Presentation.CurrencySymbol)
	}
	if cfg.History.Driver != "memory" {
		t.Errorf("History.Driver = %q, want memory", cfg.History.Driver)
	}
	if cfg.Rates.PollInterval != 30*time.Second {
		t.Errorf("Rates.PollInterval = %v, want 30s", cfg.Rates.PollInterval)
	}
	if !cfg.Rates.Cache.Enabled {
		t.Error("Rates.Cache.Enabled = false, want true")
	}
}

func TestLoad_missing_file(t *testing.T) {
	_, err := Load("testdata/nonexistent.yaml")
	if err == nil {
		t.Fatal("Load() with missing file should return error")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Server.Port != 8080 {
		t.Errorf("default Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.History.Driver != "file" {
		t.Errorf("default History.Driver = %q, want file", cfg.History.Driver)
	}
	if cfg.Rates.PollInterval != 60*time.Second {
		t.Errorf("default Rates.PollInterval = %v, want 60s", cfg.Rates.PollInterval)
	}
	if cfg.Presentation.DefaultLocale != "en-IN" {
		t.Errorf("default DefaultLocale = %q, want en-IN", cfg.Presentation.DefaultLocale)
	}
	if cfg.Observability.LogLevel != "info" {
		t.Errorf("default LogLevel = %q, want info", cfg.Observability.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CALCHUB_SERVER_PORT", "3000")
	t.Setenv("CALCHUB_LOG_LEVEL", "error")
	t.Setenv("CALCHUB_HISTORY_DRIVER", "postgres")
	t.Setenv("CALCHUB_DEFAULT_LOCALE", "en-GB")

	cfg, err := Load("testdata/valid.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000 (env override)", cfg.Server.Port)
	}
	if cfg.Observability.LogLevel != "error" {
		t.Errorf("LogLevel = %q, want error (env override)", cfg.Observability.LogLevel)
	}
	if cfg.History.Driver != "postgres" {
		t.Errorf("History.Driver = %q, want postgres (env override)", cfg.History.Driver)
	}
	if cfg.Presentation.DefaultLocale != "en-GB" {
		t.Errorf("DefaultLocale = %q, want en-GB (env override)", cfg.Presentation.DefaultLocale)
	}
}

func TestValidate_invalid_port(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with port 0 should return error")
	}
}

func TestValidate_badHistoryDriver(t *testing.T) {
	cfg := Defaults()
	cfg.History.Driver = "cassandra"
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with unknown history driver should return error")
	}
}

func TestValidate_authRequiresIssuer(t *testing.T) {
	cfg := Defaults()
	cfg.Auth.Enabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() with auth enabled but no issuer should return error")
	}
	cfg.Auth.Issuer = "https://auth.example.com"
	cfg.Auth.Audience = "calchub"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
