package config

import (
	"log/slog"
	"os"
	"testing"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	// Clear any existing env vars
	t.Setenv("DATABASE_URL", "")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
	if err.Error() != "database_url is required (env: DATABASE_URL)" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPPort != 6161 {
		t.Errorf("expected HTTPPort 6161, got %d", cfg.HTTPPort)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected LogLevel info, got %v", cfg.LogLevel)
	}
	if cfg.OTELEndpoint != "localhost:4317" {
		t.Errorf("expected OTELEndpoint localhost:4317, got %s", cfg.OTELEndpoint)
	}
	if cfg.TracingEnabled {
		t.Error("expected tracing disabled by default")
	}
	if cfg.RateLimit != 0 {
		t.Errorf("expected RateLimit 0, got %v", cfg.RateLimit)
	}
	if cfg.RateLimitBurst != 1 {
		t.Errorf("expected RateLimitBurst 1, got %d", cfg.RateLimitBurst)
	}
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://custom/db")
	t.Setenv("PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://custom/db" {
		t.Errorf("expected DatabaseURL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 9999 {
		t.Errorf("expected HTTPPort 9999, got %d", cfg.HTTPPort)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected LogLevel debug, got %v", cfg.LogLevel)
	}
	if cfg.OTELEndpoint != "otel-collector:4317" {
		t.Errorf("expected OTELEndpoint otel-collector:4317, got %s", cfg.OTELEndpoint)
	}
	if !cfg.TracingEnabled {
		t.Error("expected tracing enabled")
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("expected RateLimit 2.5, got %v", cfg.RateLimit)
	}
	if cfg.RateLimitBurst != 5 {
		t.Errorf("expected RateLimitBurst 5, got %d", cfg.RateLimitBurst)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Bad Port", env: map[string]string{"PORT": "not-a-port"}},
		{name: "Port Out Of Range", env: map[string]string{"PORT": "70000"}},
		{name: "Bad Log Level", env: map[string]string{"LOG_LEVEL": "chatty"}},
		{name: "Negative Rate Limit", env: map[string]string{"RATE_LIMIT": "-1"}},
		{name: "Zero Burst", env: map[string]string{"RATE_LIMIT": "10", "RATE_LIMIT_BURST": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/test")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := Load(""); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "itemplane-test-*.yaml")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
database_url: "postgres://config-file/db"
http_port: 7777
log_level: warn
rate_limit: 20
rate_limit_burst: 40
`)

	// Clear env vars that would override
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://config-file/db" {
		t.Errorf("expected DatabaseURL from config file, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 7777 {
		t.Errorf("expected HTTPPort 7777, got %d", cfg.HTTPPort)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("expected LogLevel warn, got %v", cfg.LogLevel)
	}
	if cfg.RateLimit != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("expected rate limit 20/40, got %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
	}
}

func TestLoad_EnvOverridesConfigFile(t *testing.T) {
	path := writeConfig(t, `
database_url: "postgres://from-file/db"
http_port: 7777
`)

	t.Setenv("DATABASE_URL", "postgres://from-env/db")
	t.Setenv("PORT", "8888")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.DatabaseURL != "postgres://from-env/db" {
		t.Errorf("expected DatabaseURL from env, got %s", cfg.DatabaseURL)
	}
	if cfg.HTTPPort != 8888 {
		t.Errorf("expected HTTPPort 8888 from env, got %d", cfg.HTTPPort)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	_, err := Load("/nonexistent/path/to/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent config file")
	}
}
