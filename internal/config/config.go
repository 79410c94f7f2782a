package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration, loaded from the environment
type Config struct {
	Host string `env:"FITAUTH_HOST" envDefault:""`
	Port int    `env:"FITAUTH_PORT" envDefault:"8080"`

	// TokenSecret is the process-wide signing key for session tokens
	TokenSecret string        `env:"FITAUTH_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"FITAUTH_TOKEN_TTL" envDefault:"24h"`

	// StorageType selects the storage backend ("memory" or "redis")
	StorageType string `env:"FITAUTH_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"FITAUTH_REDIS_URL"`
}

// Load parses configuration from the environment and validates it
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TokenSecret == "" {
		return Config{}, errors.New("FITAUTH_TOKEN_SECRET is required")
	}

	return cfg, nil
}
