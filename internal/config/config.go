package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all environment-driven configuration. It is built once in
// main and passed to the components that need it; nothing reads the
// environment after startup.
type Config struct {
	Port        string `env:"PORT" envDefault:"8000"`
	DatabaseURL string `env:"DATABASE_URL"`
	JWTSecret   string `env:"JWT_SECRET"`

	Line Line `envPrefix:"LINE_"`
}

// Line configures the LINE Messaging API client.
type Line struct {
	ChannelAccessToken string `env:"CHANNEL_ACCESS_TOKEN"`
	DefaultRecipient   string `env:"DEFAULT_RECIPIENT"`
	APIBaseURL         string `env:"API_BASE_URL" envDefault:"https://api.line.me"`
}

// Load reads a .env file when present, then parses the environment into a
// Config. A missing DATABASE_URL is fatal; LINE secrets are allowed to be
// absent here and are checked at first use instead.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is not set")
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Masked reports presence and length of each configured secret without ever
// exposing the value. Served by the /api/env diagnostics endpoint.
func (c Config) Masked() map[string]map[string]any {
	report := func(v string) map[string]any {
		return map[string]any{"set": v != "", "length": len(v)}
	}
	return map[string]map[string]any{
		"DATABASE_URL":              report(c.DatabaseURL),
		"JWT_SECRET":                report(c.JWTSecret),
		"LINE_CHANNEL_ACCESS_TOKEN": report(c.Line.ChannelAccessToken),
		"LINE_DEFAULT_RECIPIENT":    report(c.Line.DefaultRecipient),
	}
}
