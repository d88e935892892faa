package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/vk/moviebox/internal/app"
	"github.com/vk/moviebox/internal/cli"
	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/hcl_adapter"
	"github.com/vk/moviebox/internal/prompt"
	"github.com/vk/moviebox/internal/yaml_adapter"
)

// main is the entrypoint for the moviebox application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		if errors.Is(err, prompt.ErrInputClosed) {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, inR io.Reader, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors; turn that into an error so
	// the caller can report it and pick the exit code.
	var moviebox *app.App
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		moviebox = app.NewApp(inR, outW, errW, appConfig, newLoader(appConfig.ConfigPath))
	}()
	if err != nil {
		return err
	}

	return moviebox.Run(ctx)
}

// newLoader picks the settings adapter by file extension. Directories and
// anything not YAML are read as HCL.
func newLoader(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml_adapter.NewLoader()
	default:
		return hcl_adapter.NewLoader()
	}
}
