// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds runtime settings. Every field can be set through a
// STAFFDIR_-prefixed environment variable or a .env file.
type Config struct {
	DB           string        `env:"DB"`
	SourceURL    string        `env:"SOURCE_URL" envDefault:"https://dummyjson.com/users"`
	FetchLimit   int           `env:"FETCH_LIMIT" envDefault:"20"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogFile      string        `env:"LOG_FILE"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return Parse()
}

// Parse parses the current environment without reading .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "STAFFDIR_"}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// Only the first error keeps the message readable.
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	if cfg.DB == "" {
		cfg.DB = DefaultDBPath()
	}
	return cfg, nil
}

// DefaultDBPath returns ~/.staff-directory/directory.db.
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".staff-directory", "directory.db")
}
