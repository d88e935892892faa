package app

import (
	"fmt"

	"github.com/vk/moviebox/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string           // settings file or directory; may not exist
	Overrides  config.Overrides // command-line settings, applied after the file

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}
