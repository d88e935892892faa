// Package config defines the format-agnostic settings model for the
// application, along with the Loader interface that format-specific adapters
// implement.
//
// The `config.Model` is the single source of truth for where the catalog and
// movie contents live and how playback is paced. Concrete loaders, such as for
// HCL or YAML, are provided in separate packages.
package config
