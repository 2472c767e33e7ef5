package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// ManifestPath is a single .hcl file or a directory of them.
	ManifestPath string

	LogFormat string // "text" or "json"
	LogLevel  string // "debug", "info", "warn", "error"

	// Workers, when positive, overrides the worker count of every scenario.
	Workers int
}

// EnvDefaults are the defaults the CLI flags start from. Environment
// variables fill them in before flag parsing, so explicit flags always win.
type EnvDefaults struct {
	LogFormat string `env:"SETONCE_LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"SETONCE_LOG_LEVEL" envDefault:"info"`
	Workers   int    `env:"SETONCE_WORKERS" envDefault:"0"`
}

// DefaultsFromEnv reads the SETONCE_* environment variables, falling back
// to the built-in defaults for anything unset.
func DefaultsFromEnv() (EnvDefaults, error) {
	var d EnvDefaults
	if err := env.Parse(&d); err != nil {
		return d, fmt.Errorf("parsing environment: %w", err)
	}
	return d, nil
}

// NewConfig validates cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("a manifest path is required")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return &cfg, nil
}
