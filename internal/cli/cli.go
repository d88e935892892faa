package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/moviebox/internal/app"
	"github.com/vk/moviebox/internal/config"
)

// DefaultConfigPath is read when -config is not given. It may be absent.
const DefaultConfigPath = "moviebox.hcl"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("moviebox", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
moviebox - pick a movie suitable for your age and watch it in the terminal.

Usage:
  moviebox [options]

Settings are read from an HCL (default) or YAML (.yaml, .yml) file; options
given on the command line take precedence over the file.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", DefaultConfigPath, "Path to a settings file or a directory of settings files.")
	catalogFlag := flagSet.String("catalog", config.DefaultCatalogPath, "Path to the movie list.")
	contentDirFlag := flagSet.String("content-dir", config.DefaultContentDir, "Directory holding the movie content files.")
	delayFlag := flagSet.String("delay", config.DefaultDelay.String(), "Pause before each revealed segment, e.g. '2s' or '500ms'.")
	relayFlag := flagSet.String("relay-url", "", "socket.io server that mirrors playback, e.g. 'http://localhost:3000/'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument: %q", flagSet.Arg(0))}
	}
	slog.Debug("Arguments parsed successfully.")

	// Only flags given explicitly override the settings file.
	var overrides config.Overrides
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			overrides.CatalogPath = catalogFlag
		case "content-dir":
			overrides.ContentDir = contentDirFlag
		case "delay":
			overrides.Delay = delayFlag
		case "relay-url":
			overrides.Relay = &config.RelayOverrides{URL: relayFlag}
		}
	})

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: *configFlag,
		Overrides:  overrides,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg.ConfigPath)
	return cfg, false, nil
}
