package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/ctxlog"
	"github.com/vk/moviebox/internal/playback"
	"github.com/vk/moviebox/internal/relay"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	inR      io.Reader
	outW     io.Writer
	logger   *slog.Logger
	settings *config.Model

	publisher  relay.Publisher // nil means dial settings.Relay when playing
	playerOpts []playback.Option
}

// Option customizes an App, mainly for tests.
type Option func(*App)

// WithPlayerOptions passes opts to the movie player.
func WithPlayerOptions(opts ...playback.Option) Option {
	return func(a *App) { a.playerOpts = append(a.playerOpts, opts...) }
}

// WithPublisher uses pub instead of dialing the configured relay.
func WithPublisher(pub relay.Publisher) Option {
	return func(a *App) { a.publisher = pub }
}

// NewApp is the constructor for the main application. The dialogue runs on
// inR and outW; diagnostics are logged to logW. Settings are loaded from
// appConfig.ConfigPath with loader and then overridden by appConfig.Overrides.
//
// NewApp panics when the settings cannot be loaded or are invalid.
func NewApp(inR io.Reader, outW, logW io.Writer, appConfig *Config, loader config.Loader, opts ...Option) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var paths []string
	if appConfig.ConfigPath != "" {
		paths = append(paths, appConfig.ConfigPath)
	}

	settings, err := loader.Load(ctx, paths...)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	if err := settings.Apply(appConfig.Overrides); err != nil {
		panic(fmt.Errorf("invalid command-line settings: %w", err))
	}
	if err := settings.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}
	logger.Debug("Configuration loaded.", "catalog", settings.Catalog.Path, "content_dir", settings.Content.Dir, "relay", settings.Relay != nil)

	a := &App{
		inR:      inR,
		outW:     outW,
		logger:   logger,
		settings: settings,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Settings returns the effective settings. This is primarily for testing.
func (a *App) Settings() *config.Model {
	return a.settings
}

// openRelay returns the publisher playback events go to. A relay that cannot
// be reached is logged and replaced by relay.Nop.
func (a *App) openRelay(ctx context.Context) relay.Publisher {
	if a.publisher != nil {
		return a.publisher
	}
	if a.settings.Relay == nil {
		return relay.Nop{}
	}

	pub, err := relay.Dial(ctx, a.settings.Relay)
	if err != nil {
		a.logger.Warn("Playback relay unavailable, continuing without it.", "url", a.settings.Relay.URL, "error", err)
		return relay.Nop{}
	}
	return pub
}
