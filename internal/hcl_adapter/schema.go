package hcl_adapter

import "github.com/vk/moviebox/internal/config"

// fileRoot decodes the top-level blocks of a settings file. Each block may
// appear at most once per file.
type fileRoot struct {
	Catalog *catalogBlock `hcl:"catalog,block"`
	Content *contentBlock `hcl:"content,block"`
	Relay   *relayBlock   `hcl:"relay,block"`
}

type catalogBlock struct {
	Path *string `hcl:"path,optional"`
}

type contentBlock struct {
	Dir       *string `hcl:"dir,optional"`
	Extension *string `hcl:"extension,optional"`
	Separator *string `hcl:"separator,optional"`
	Delay     *string `hcl:"delay,optional"`
}

type relayBlock struct {
	URL                string  `hcl:"url"`
	Namespace          *string `hcl:"namespace,optional"`
	Event              *string `hcl:"event,optional"`
	Timeout            *string `hcl:"timeout,optional"`
	InsecureSkipVerify *bool   `hcl:"insecure_skip_verify,optional"`
}

// overrides translates the decoded blocks into the format-agnostic form.
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
			URL:                &rl.URL,
			Namespace:          rl.Namespace,
			Event:              rl.Event,
			Timeout:            rl.Timeout,
			InsecureSkipVerify: rl.InsecureSkipVerify,
		}
	}
	return o
}
