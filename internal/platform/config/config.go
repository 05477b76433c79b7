// Package config loads the process configuration from the environment so
// main stays lean. Secrets are plain env vars; there is no config file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration.
type Config struct {
	Addr string `env:"CMS_ADDR" envDefault:":3000"`

	// Empty DatabaseURL selects the in-memory user store; empty RedisURL
	// selects the in-memory session store. Both are for local development
	// and tests only.
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	JWTSigningKey string        `env:"JWT_SECRET"`
	TokenTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"15m"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleCallbackURL  string `env:"GOOGLE_CALLBACK_URL" envDefault:"http://localhost:3000/api/auth/google/callback"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.JWTSigningKey == "" {
		// Development fallback; must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg, nil
}
