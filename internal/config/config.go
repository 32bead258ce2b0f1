// Package config loads the sceneserver configuration from SCENE_*
// environment variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name.
const Prefix = "SCENE"

// Config is the server configuration.
type Config struct {
	Addr           string   `envconfig:"ADDR" default:":8080"`
	DBPath         string   `envconfig:"DB_PATH" default:"data/scenes.db"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Level parses LogLevel as a slog level name.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: SCENE_LOG_LEVEL: %w", err)
	}
	return l, nil
}
