package config

import (
	"fmt"
	"time"
)

// Overrides is a sparse set of settings as read from one source (a config
// file or the command line). Nil fields leave the current value untouched.
type Overrides struct {
	CatalogPath *string
	ContentDir  *string
	Extension   *string
	Separator   *string
	Delay       *string // time.ParseDuration syntax, e.g. "2s"
	Relay       *RelayOverrides
}

// RelayOverrides is the sparse form of RelaySettings.
type RelayOverrides struct {
	URL                *string
	Namespace          *string
	Event              *string
	Timeout            *string
	InsecureSkipVerify *bool
}

// Apply merges o into m. Applying a relay override to a model without a
// relay enables the relay with default settings first.
func (m *Model) Apply(o Overrides) error {
	setString(&m.Catalog.Path, o.CatalogPath)
	setString(&m.Content.Dir, o.ContentDir)
	setString(&m.Content.Extension, o.Extension)
	setString(&m.Content.Separator, o.Separator)
	if err := setDuration(&m.Content.Delay, o.Delay, "delay"); err != nil {
		return err
	}

	if o.Relay == nil {
		return nil
	}
	if m.Relay == nil {
		m.Relay = NewRelaySettings("")
	}
	setString(&m.Relay.URL, o.Relay.URL)
	setString(&m.Relay.Namespace, o.Relay.Namespace)
	setString(&m.Relay.Event, o.Relay.Event)
	if o.Relay.InsecureSkipVerify != nil {
		m.Relay.InsecureSkipVerify = *o.Relay.InsecureSkipVerify
	}
	return setDuration(&m.Relay.Timeout, o.Relay.Timeout, "relay timeout")
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, *v, err)
	}
	*dst = d
	return nil
}
