// Package config loads engine configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backend names.
const (
	StorageFile  = "file"
	StorageRedis = "redis"
)

type Config struct {
	// Storage selects the campaign store backend: "file" or "redis".
	Storage  string `env:"STORAGE" envDefault:"file"`
	DataDir  string `env:"DATA_DIR" envDefault:"./data"`
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.Storage {
	case StorageFile, StorageRedis:
	default:
		return nil, fmt.Errorf("unknown STORAGE backend %q", cfg.Storage)
	}
	return &cfg, nil
}

func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.LogLevelRaw) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
