// Package config loads host settings for the valley binary from the
// environment. Game tunables live in the content tables, not here.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/ForkArcade/river-valley-settlement/internal/world"
)

// Config holds host settings.
type Config struct {
	Seed     int64  `env:"VALLEY_SEED"      envDefault:"0"`
	DB       string `env:"VALLEY_DB"`
	LogLevel string `env:"VALLEY_LOG_LEVEL" envDefault:"info"`
	Content  string `env:"VALLEY_CONTENT"`
	Terrain  string `env:"VALLEY_TERRAIN"   envDefault:"noise"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if _, err := c.Strategy(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Strategy returns the terrain generation strategy.
func (c Config) Strategy() (world.Strategy, error) {
	s, ok := world.ParseStrategy(strings.ToLower(c.Terrain))
	if !ok {
		return 0, fmt.Errorf("VALLEY_TERRAIN: unknown strategy %q", c.Terrain)
	}
	return s, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(c.LogLevel) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("VALLEY_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
