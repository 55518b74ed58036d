// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	SQLite SQLiteConfig
	Redis  RedisConfig
}

type SQLiteConfig struct {
	DSN string `env:"SQLITE_DSN, default=dos.db"`
}

// RedisConfig is optional: an empty Addr keeps sessions in process
// memory instead of a shared store.
type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR"`
	DB         int           `env:"REDIS_DB,    default=0"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
