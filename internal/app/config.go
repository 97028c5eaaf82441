package app

import (
	"errors"
	"fmt"
	"strings"
)

// NoWorkersOverride leaves the worker count of the input document in place.
const NoWorkersOverride int64 = -1

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // .json, .yaml, .yml, .hcl or a directory of .hcl files
	OutputPath string // .json, .yaml or .yml

	// Workers overrides the document's workers_count unless it is
	// NoWorkersOverride.
	Workers     int64
	AllowCycles bool
	// Strict turns a stalled run into an error.
	Strict bool

	// DBPath enables the schedule store when set.
	DBPath string

	ListenAddr string

	LogFormat string
	LogLevel  string
	NoColor   bool
	Table     bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputPath == "" {
		return nil, errors.New("OutputPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < NoWorkersOverride {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	return &cfg, nil
}
