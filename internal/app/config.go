package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/deckgo/internal/units"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	UnitSystem string // built-in or loaded system name
	UnitsPath  string // optional HCL file or directory with unit_system blocks

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy with normalized fields.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.UnitSystem == "" {
		return nil, errors.New("UnitSystem is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	// Built-in names are case-insensitive; loaded systems keep their label.
	if cfg.UnitsPath == "" {
		cfg.UnitSystem = strings.ToUpper(cfg.UnitSystem)
		if _, err := units.System(cfg.UnitSystem); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}
