package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, shouldExit, err := Parse(nil, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, DefaultConfigPath, cfg.ConfigPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Nil(t, cfg.Overrides.CatalogPath, "unset flags must not override the settings file")
	assert.Nil(t, cfg.Overrides.ContentDir)
	assert.Nil(t, cfg.Overrides.Delay)
	assert.Nil(t, cfg.Overrides.Relay)
}

func TestParse_ExplicitFlagsBecomeOverrides(t *testing.T) {
	cfg, _, err := Parse([]string{
		"-config", "conf/moviebox.yaml",
		"-catalog", "lists/all",
		"-content-dir", "contents",
		"-delay", "0s",
		"-relay-url", "http://localhost:3000/",
		"-log-level", "DEBUG",
		"-log-format", "json",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "conf/moviebox.yaml", cfg.ConfigPath)
	require.NotNil(t, cfg.Overrides.CatalogPath)
	assert.Equal(t, "lists/all", *cfg.Overrides.CatalogPath)
	require.NotNil(t, cfg.Overrides.ContentDir)
	assert.Equal(t, "contents", *cfg.Overrides.ContentDir)
	require.NotNil(t, cfg.Overrides.Delay)
	assert.Equal(t, "0s", *cfg.Overrides.Delay)
	require.NotNil(t, cfg.Overrides.Relay)
	assert.Equal(t, "http://localhost:3000/", *cfg.Overrides.Relay.URL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_Help(t *testing.T) {
	out := &bytes.Buffer{}

	cfg, shouldExit, err := Parse([]string{"-h"}, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "-content-dir")
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--nope"}, wantMsg: "flag provided but not defined"},
		{name: "positional argument", args: []string{"movies"}, wantMsg: `unexpected argument: "movies"`},
		{name: "bad log level", args: []string{"-log-level", "loud"}, wantMsg: "invalid log-level"},
		{name: "bad log format", args: []string{"-log-format", "xml"}, wantMsg: "invalid log-format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Parse(tc.args, &bytes.Buffer{})

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
