// Package config loads application configuration from the environment.
//
// Every setting is an env var with a cleanenv struct tag. A .env file in the
// working directory is honoured via godotenv (loaded in main before Load is
// called), so local dev needs no shell exports. Nothing here is global —
// Load returns a value and the caller passes it down.
package config

import (
	"fmt"
	"log/slog"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the server needs to start. env-required fields
// fail Load with a readable message instead of failing later at first use.
type Config struct {
	Port     int    `env:"PORT" env-default:"8080"`
	DBPath   string `env:"DB_PATH" env-default:"data/taskflow.db"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// JWT_SECRET signs session tokens. Generate with:
	//   openssl rand -hex 32
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`

	GitHubClientID     string `env:"GITHUB_CLIENT_ID" env-required:"true"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET" env-required:"true"`
	GitHubCallbackURL  string `env:"GITHUB_CALLBACK_URL"`
}

// Load reads the environment into a Config. GITHUB_CALLBACK_URL defaults to
// the local address for the configured port, which is what a dev OAuth app
// registers.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.GitHubCallbackURL == "" {
		cfg.GitHubCallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", cfg.Port)
	}

	return cfg, nil
}

// SlogLevel maps the LOG_LEVEL string to a slog level. Unknown values fall
// back to Info rather than erroring — a typo in a log setting should not
// keep the server down.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
