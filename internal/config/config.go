// Package config defines the top-level configuration for the monetization
// service and provides validation helpers.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by MONETIZE_* environment
// variables.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Auth       AuthConfig       `toml:"auth"`
	Postgres   PostgresConfig   `toml:"postgres"`
	Clickhouse ClickhouseConfig `toml:"clickhouse"`
	Redis      RedisConfig      `toml:"redis"`
	Pricing    PricingConfig    `toml:"pricing"`
	LogLevel   string           `toml:"log_level"`
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ReadTimeout     time.Duration `toml:"read_timeout"`
	WriteTimeout    time.Duration `toml:"write_timeout"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// AuthConfig maps API tokens to user IDs. An empty map disables
// authentication; all callers are then anonymous.
type AuthConfig struct {
	Keys map[string]string `toml:"keys"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	RunMigrations bool   `toml:"run_migrations"`
}

// ClickhouseConfig holds ClickHouse connection parameters.
type ClickhouseConfig struct {
	DSN           string `toml:"dsn"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters for the market cache.
type RedisConfig struct {
	Enabled     bool          `toml:"enabled"`
	Addr        string        `toml:"addr"`
	Password    string        `toml:"password"`
	DB          int           `toml:"db"`
	PoolSize    int           `toml:"pool_size"`
	MaxRetries  int           `toml:"max_retries"`
	SnapshotTTL time.Duration `toml:"snapshot_ttl"`
}

// PricingConfig holds demand model parameters.
type PricingConfig struct {
	Elasticity float64 `toml:"elasticity"`
	MaxMove    float64 `toml:"max_move"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Postgres: PostgresConfig{
			RunMigrations: true,
		},
		Clickhouse: ClickhouseConfig{
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			PoolSize:    10,
			MaxRetries:  3,
			SnapshotTTL: 15 * time.Minute,
		},
		Pricing: PricingConfig{
			Elasticity: -1.4,
			MaxMove:    0.15,
		},
		LogLevel: "info",
	}
}

// Validate checks invariants the rest of the system relies on.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Pricing.Elasticity >= 0 {
		return fmt.Errorf("pricing.elasticity must be negative, got %v", c.Pricing.Elasticity)
	}
	if c.Pricing.MaxMove <= 0 || c.Pricing.MaxMove >= 1 {
		return fmt.Errorf("pricing.max_move must be in (0,1), got %v", c.Pricing.MaxMove)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
