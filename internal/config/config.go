// Package config reads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the settings every command shares.
type Config struct {
	DBPath      string        `env:"CAREERPILOT_DB"`
	AuthDelay   time.Duration `env:"CAREERPILOT_AUTH_DELAY"   envDefault:"1s"`
	DemoAccount string        `env:"CAREERPILOT_DEMO_ACCOUNT" envDefault:"test@test.com"`
	LogFile     string        `env:"CAREERPILOT_LOG_FILE"`
	SkipSplash  bool          `env:"CAREERPILOT_SKIP_SPLASH"`
}

// Load reads the given dotenv files, then the environment. Missing files
// are skipped and variables already set in the environment win. With no
// files, ".env" in the working directory is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.AuthDelay < 0 {
		return Config{}, fmt.Errorf("CAREERPILOT_AUTH_DELAY must not be negative, got %s", cfg.AuthDelay)
	}
	return cfg, nil
}
