package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	DefaultCatalogPath = "res/movies/movie_list"
	DefaultContentDir  = "res/movies"
	DefaultExtension   = ".tmov"
	DefaultSeparator   = "---\n"
	DefaultDelay       = 2 * time.Second

	DefaultRelayEvent   = "segment"
	DefaultRelayTimeout = 10 * time.Second
)

// Model is the unified, format-agnostic representation of the application
// settings.
type Model struct {
	Catalog CatalogSettings
	Content ContentSettings
	// Relay is nil when playback is not mirrored anywhere.
	Relay *RelaySettings
}

// CatalogSettings locates the movie list.
type CatalogSettings struct {
	Path string
}

// ContentSettings describes where movie contents live and how they are revealed.
type ContentSettings struct {
	Dir       string
	Extension string
	Separator string
	Delay     time.Duration
}

// RelaySettings configures the socket.io playback relay.
type RelaySettings struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Default returns the settings used when no configuration file is given.
func Default() *Model {
	return &Model{
		Catalog: CatalogSettings{Path: DefaultCatalogPath},
		Content: ContentSettings{
			Dir:       DefaultContentDir,
			Extension: DefaultExtension,
			Separator: DefaultSeparator,
			Delay:     DefaultDelay,
		},
	}
}

// NewRelaySettings returns relay settings for url with defaults filled in.
func NewRelaySettings(url string) *RelaySettings {
	return &RelaySettings{URL: url, Event: DefaultRelayEvent, Timeout: DefaultRelayTimeout}
}

// Validate checks the model for values the application cannot work with.
func (m *Model) Validate() error {
	var errs []error
	if m.Catalog.Path == "" {
		errs = append(errs, errors.New("catalog path must not be empty"))
	}
	if m.Content.Dir == "" {
		errs = append(errs, errors.New("content dir must not be empty"))
	}
	if m.Content.Separator == "" {
		errs = append(errs, errors.New("content separator must not be empty"))
	}
	if m.Content.Delay < 0 {
		errs = append(errs, fmt.Errorf("content delay must not be negative, got %s", m.Content.Delay))
	}
	if m.Relay != nil {
		if err := m.Relay.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *RelaySettings) validate() error {
	u, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("relay url %q: %w", r.URL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("relay url %q must be absolute", r.URL)
	}
	if r.Event == "" {
		return errors.New("relay event must not be empty")
	}
	if r.Timeout <= 0 {
		return fmt.Errorf("relay timeout must be positive, got %s", r.Timeout)
	}
	return nil
}
