// Package yaml_adapter loads application settings from YAML files.
package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/ctxlog"
	"github.com/vk/moviebox/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

type fileRoot struct {
	Catalog *struct {
		Path *string `yaml:"path"`
	} `yaml:"catalog"`
	Content *struct {
		Dir       *string `yaml:"dir"`
		Extension *string `yaml:"extension"`
		Separator *string `yaml:"separator"`
		Delay     *string `yaml:"delay"`
	} `yaml:"content"`
	Relay *struct {
		URL                *string `yaml:"url"`
		Namespace          *string `yaml:"namespace"`
		Event              *string `yaml:"event"`
		Timeout            *string `yaml:"timeout"`
		InsecureSkipVerify *bool   `yaml:"insecure_skip_verify"`
	} `yaml:"relay"`
}

// Load decodes every YAML file reachable from paths and applies them, in
// order, on top of the default settings. Unknown keys are rejected.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := config.Default()

	files, err := fsutil.FindFiles(paths, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("cannot read config file %s: %w", file, err)
		}

		var root fileRoot
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("cannot parse config file %s: %w", file, err)
		}

		if err := model.Apply(root.overrides()); err != nil {
			return nil, fmt.Errorf("invalid settings in %s: %w", file, err)
		}
		logger.Debug("Applied YAML file.", "file", file)
	}

	return model, nil
}

func (r *fileRoot) overrides() config.Overrides {
	var o config.Overrides
	if r.Catalog != nil {
		o.CatalogPath = r.Catalog.Path
	}
	if c := r.Content; c != nil {
		o.ContentDir = c.Dir
		o.Extension = c.Extension
		o.Separator = c.Separator
		o.Delay = c.Delay
	}
	if rl := r.Relay; rl != nil {
		o.Relay = &config.RelayOverrides{
			URL:                rl.URL,
			Namespace:          rl.Namespace,
			Event:              rl.Event,
			Timeout:            rl.Timeout,
			InsecureSkipVerify: rl.InsecureSkipVerify,
		}
	}
	return o
}
