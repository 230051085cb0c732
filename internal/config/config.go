// Package config loads service settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"itemplane/internal/logger"
	"log/slog"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the application.
type Config struct {
	// Database connection string
	DatabaseURL string

	// HTTP server port
	HTTPPort int

	LogLevel slog.Level

	// OTLP gRPC collector address, used when TracingEnabled is set
	OTELEndpoint   string
	TracingEnabled bool

	// Requests per second per client IP; 0 disables rate limiting.
	RateLimit      float64
	RateLimitBurst int
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"database_url":     "DATABASE_URL",
	"http_port":        "PORT",
	"log_level":        "LOG_LEVEL",
	"otel_endpoint":    "OTEL_EXPORTER_OTLP_ENDPOINT",
	"tracing_enabled":  "TRACING_ENABLED",
	"rate_limit":       "RATE_LIMIT",
	"rate_limit_burst": "RATE_LIMIT_BURST",
}

// Load reads configuration from path (or ./itemplane.yaml when path is empty),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http_port", 6161)
	v.SetDefault("log_level", "info")
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("tracing_enabled", false)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("rate_limit_burst", 1)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("itemplane")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:    v.GetString("database_url"),
		HTTPPort:       v.GetInt("http_port"),
		OTELEndpoint:   v.GetString("otel_endpoint"),
		TracingEnabled: v.GetBool("tracing_enabled"),
		RateLimit:      v.GetFloat64("rate_limit"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("database_url is required (env: DATABASE_URL)")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid http_port: %d", cfg.HTTPPort)
	}
	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("invalid rate_limit: %v", cfg.RateLimit)
	}
	if cfg.RateLimit > 0 && cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("rate_limit_burst must be at least 1, got %d", cfg.RateLimitBurst)
	}

	level, err := logger.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}
