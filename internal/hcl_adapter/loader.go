// Package hcl_adapter loads application settings from HCL files.
package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/ctxlog"
	"github.com/vk/moviebox/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader that exposes the process
// environment to expressions as `env.NAME`.
func NewLoader() *Loader {
	return &Loader{environ: defaultEnviron}
}

// Load parses every HCL file reachable from paths and applies them, in order,
// on top of the default settings.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.Default()

	hclFiles, err := fsutil.FindFiles(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	evalCtx := newEvalContext(l.environ())

	for _, file := range hclFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		if err := model.Apply(root.overrides()); err != nil {
			return nil, fmt.Errorf("invalid settings in %s: %w", file, err)
		}
		logger.Debug("Applied HCL file.", "file", file)
	}

	return model, nil
}
