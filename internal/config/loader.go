package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MONETIZE_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load. An empty path skips the
// file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MONETIZE_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Server.Addr, "MONETIZE_SERVER_ADDR")

	setStr(&cfg.Postgres.DSN, "MONETIZE_POSTGRES_DSN")
	setBool(&cfg.Postgres.RunMigrations, "MONETIZE_POSTGRES_RUN_MIGRATIONS")

	setStr(&cfg.Clickhouse.DSN, "MONETIZE_CLICKHOUSE_DSN")
	setBool(&cfg.Clickhouse.RunMigrations, "MONETIZE_CLICKHOUSE_RUN_MIGRATIONS")

	setBool(&cfg.Redis.Enabled, "MONETIZE_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "MONETIZE_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MONETIZE_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MONETIZE_REDIS_DB")
	setDuration(&cfg.Redis.SnapshotTTL, "MONETIZE_REDIS_SNAPSHOT_TTL")

	setFloat(&cfg.Pricing.Elasticity, "MONETIZE_PRICING_ELASTICITY")
	setFloat(&cfg.Pricing.MaxMove, "MONETIZE_PRICING_MAX_MOVE")

	setStr(&cfg.LogLevel, "MONETIZE_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
