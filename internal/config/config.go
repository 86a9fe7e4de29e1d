// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends understood by storage.Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// Config holds process-level settings. User preferences live in the
// YAML settings file instead.
type Config struct {
	// Storage settings.
	Backend  string
	DataDir  string // Defaults to <user config dir>/<app name>.
	MySQLDSN string

	// Engine settings.
	TickInterval time.Duration

	// OTEL settings.
	OTELEndpoint string
	OTELInsecure bool
	ServiceName  string

	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load(appName string) (Config, error) {
	cfg := Config{
		Backend:      strings.ToLower(envStr("TIMERDECK_STORAGE", BackendFile)),
		DataDir:      envStr("TIMERDECK_DATA_DIR", ""),
		MySQLDSN:     envStr("TIMERDECK_MYSQL_DSN", ""),
		TickInterval: envDuration("TIMERDECK_TICK_INTERVAL", time.Second),
		OTELEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure: envBool("OTEL_INSECURE", false),
		ServiceName:  envStr("OTEL_SERVICE_NAME", strings.ToLower(appName)),
		LogLevel:     strings.ToLower(envStr("TIMERDECK_LOG_LEVEL", "info")),
	}

	if cfg.DataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("config: resolve user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(configDir, appName)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("config: TIMERDECK_MYSQL_DSN is required for the mysql backend")
		}
	default:
		return fmt.Errorf("config: unknown TIMERDECK_STORAGE %q", c.Backend)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("config: TIMERDECK_TICK_INTERVAL must be positive")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
