package app_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/moviebox/internal/app"
	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/prompt"
	"github.com/vk/moviebox/internal/relay"
	"github.com/vk/moviebox/internal/testutil"
	"github.com/vk/moviebox/internal/yaml_adapter"
)

var library = testutil.Library{
	Catalog: []string{
		"1,Zeta,Z Director,0",
		"2,Alpha,A Director,6",
		"3,Mike,M Director,12",
		"4,Adult,X Director,18",
		"g,Bad,Nobody,0",
	},
	Contents: map[string]string{
		"1": "intro\n---\nmiddle\n---\nend",
	},
}

func TestRun_FullSession(t *testing.T) {
	// --- Arrange ---
	stdin := "abc\n200\n12\n0\nfoo\n4\n3\n"

	// --- Act ---
	res := testutil.RunApp(t, library, stdin)

	// --- Assert ---
	require.NoError(t, res.Err)

	want := "" +
		"What is your age? Try again! The age must be a number.\n" +
		"What is your age? Try again! The age must be between 0 and 150.\n" +
		"What is your age? \n" +
		"Amazing! Here is a list of movies you may watch:\n" +
		"1. Alpha by A Director, FSK 6\n" +
		"2. Mike by M Director, FSK 12\n" +
		"3. Zeta by Z Director, FSK 0\n" +
		"\n" +
		"Select a movie by typing in it's number: Try again! The index must be in range.\n" +
		"Select a movie by typing in it's number: Try again! The index must be a number.\n" +
		"Select a movie by typing in it's number: Try again! The index must be in range.\n" +
		"Select a movie by typing in it's number: \n" +
		"Watching Zeta by Z Director...\n" +
		"intro\nmiddle\nend"
	assert.Equal(t, want, res.Output)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, res.Sleeps)
	assert.Contains(t, res.LogOutput, "Skipping malformed movie line.")
}

func TestRun_AdultSeesEverything(t *testing.T) {
	res := testutil.RunApp(t, library, "18\n1\n")
	require.NoError(t, res.Err)

	assert.Contains(t, res.Output, "1. Adult by X Director, FSK 18\n2. Alpha by A Director, FSK 6\n")
	assert.Contains(t, res.Output, "Watching Adult by X Director...\n")
	assert.Contains(t, res.LogOutput, "Could not load contents for movie.")
	assert.Empty(t, res.Sleeps)
}

func TestRun_NoWatchableMovies(t *testing.T) {
	lib := testutil.Library{Catalog: []string{"1,Only,Someone,16"}}

	res := testutil.RunApp(t, lib, "10\n")

	require.NoError(t, res.Err)
	assert.True(t, strings.HasSuffix(res.Output, "Amazing! Here is a list of movies you may watch:\nSorry, there are no movies you may watch.\n"))
	assert.NotContains(t, res.Output, "Select a movie")
}

func TestRun_MissingCatalog(t *testing.T) {
	res := testutil.RunApp(t, testutil.Library{}, "30\n")

	require.NoError(t, res.Err)
	assert.Contains(t, res.Output, "Sorry, there are no movies you may watch.")
	assert.Contains(t, res.LogOutput, "Could not read movie list.")
}

func TestRun_InputClosed(t *testing.T) {
	testCases := []struct {
		name       string
		stdin      string
		wantPrefix string
	}{
		{name: "while asking age", stdin: "", wantPrefix: "reading age"},
		{name: "after invalid age", stdin: "abc\n", wantPrefix: "reading age"},
		{name: "while asking selection", stdin: "12\n", wantPrefix: "reading selection"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := testutil.RunApp(t, library, tc.stdin)

			require.ErrorIs(t, res.Err, prompt.ErrInputClosed)
			assert.True(t, strings.HasPrefix(res.Err.Error(), tc.wantPrefix), res.Err.Error())
			assert.NotContains(t, res.Output, "Watching")
		})
	}
}

func TestRun_ConfigFileControlsPlayback(t *testing.T) {
	lib := testutil.Library{
		Catalog:  []string{"a,Tenth,Ten,0"},
		Contents: map[string]string{"a": "one\n***\ntwo\n"},
		Extra: map[string]string{
			"moviebox.hcl": `
content {
  separator = "***\n"
  delay     = "5s"
}
`,
		},
	}

	res := testutil.RunApp(t, lib, "0\n1\n")

	require.NoError(t, res.Err)
	assert.True(t, strings.HasSuffix(res.Output, "Watching Tenth by Ten...\none\ntwo\n"))
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second}, res.Sleeps)
}

func TestRun_InvalidConfigPanicsAtStartup(t *testing.T) {
	lib := testutil.Library{
		Extra: map[string]string{"moviebox.hcl": "content {\n  delay = \"-1s\"\n}\n"},
	}

	res := testutil.RunApp(t, lib, "")

	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "application startup panicked")
	assert.Contains(t, res.Err.Error(), "delay must not be negative")
	assert.Nil(t, res.App)
}

type fakePublisher struct {
	events []relay.Event
	closed bool
}

func (f *fakePublisher) Publish(_ context.Context, ev relay.Event) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func TestRun_RelaysPlayback(t *testing.T) {
	pub := &fakePublisher{}

	res := testutil.RunApp(t, library, "0\n1\n", app.WithPublisher(pub))

	require.NoError(t, res.Err)
	require.Len(t, pub.events, 5)
	assert.Equal(t, relay.KindStarted, pub.events[0].Kind)
	assert.Equal(t, "middle\n", pub.events[2].Text)
	assert.Equal(t, relay.KindFinished, pub.events[4].Kind)
	assert.True(t, pub.closed)
}

func TestNewApp_FlagOverridesBeatConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "moviebox.yaml")
	lib := testutil.Library{Extra: map[string]string{"moviebox.yaml": "catalog:\n  path: from-file\ncontent:\n  dir: from-file\n"}}
	lib.Write(t, dir)

	override := "from-flag"
	a := app.NewApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}, &app.Config{
		ConfigPath: cfgPath,
		Overrides:  config.Overrides{CatalogPath: &override},
		LogLevel:   "warn",
		LogFormat:  "text",
	}, yaml_adapter.NewLoader())

	assert.Equal(t, "from-flag", a.Settings().Catalog.Path)
	assert.Equal(t, "from-file", a.Settings().Content.Dir)
}

func TestNewConfig(t *testing.T) {
	_, err := app.NewConfig(app.Config{LogLevel: "info", LogFormat: "json"})
	require.NoError(t, err)

	_, err = app.NewConfig(app.Config{LogLevel: "loud", LogFormat: "text"})
	assert.ErrorContains(t, err, "invalid log-level")

	_, err = app.NewConfig(app.Config{LogLevel: "info", LogFormat: "xml"})
	assert.ErrorContains(t, err, "invalid log-format")
}
