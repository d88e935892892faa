// Package testutil provides a harness that runs the whole application
// against a temporary movie library with scripted console input.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/moviebox/internal/app"
	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/hcl_adapter"
	"github.com/vk/moviebox/internal/playback"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Root      string // temporary library root
	Output    string // console dialogue
	LogOutput string
	Sleeps    []time.Duration
	Err       error
	App       *app.App
}

// Library builds file contents for a temporary movie library.
type Library struct {
	Catalog  []string          // lines of res/movies/movie_list
	Contents map[string]string // hex id -> content file text
	Extra    map[string]string // any other file, relative to the root
}

// Write materializes lib under root.
func (lib Library) Write(t *testing.T, root string) {
	t.Helper()
	files := make(map[string]string, len(lib.Contents)+len(lib.Extra)+1)
	if lib.Catalog != nil {
		files[filepath.Join("res", "movies", "movie_list")] = strings.Join(lib.Catalog, "\n") + "\n"
	}
	for hexID, text := range lib.Contents {
		files[filepath.Join("res", "movies", hexID+config.DefaultExtension)] = text
	}
	for name, text := range lib.Extra {
		files[name] = text
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// RunApp writes lib to a temporary directory and runs the application with
// stdin as console input, with the catalog and contents pointed at that
// directory. Playback pauses are recorded instead of slept.
func RunApp(t *testing.T, lib Library, stdin string, opts ...app.Option) *HarnessResult {
	t.Helper()
	return RunAppWithContext(context.Background(), t, lib, stdin, opts...)
}

// RunAppWithContext is RunApp with a caller-provided context.
func RunAppWithContext(ctx context.Context, t *testing.T, lib Library, stdin string, opts ...app.Option) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	lib.Write(t, root)

	catalogPath := filepath.Join(root, "res", "movies", "movie_list")
	contentDir := filepath.Join(root, "res", "movies")
	appConfig := &app.Config{
		ConfigPath: filepath.Join(root, "moviebox.hcl"),
		Overrides: config.Overrides{
			CatalogPath: &catalogPath,
			ContentDir:  &contentDir,
		},
		LogLevel:  "debug",
		LogFormat: "text",
	}

	var (
		out    SafeBuffer
		logs   SafeBuffer
		sleeps []time.Duration
	)
	recordSleep := func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	opts = append([]app.Option{app.WithPlayerOptions(playback.WithSleep(recordSleep))}, opts...)

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(strings.NewReader(stdin), &out, &logs, appConfig, hcl_adapter.NewLoader(), opts...)
	}()

	if panicErr != nil {
		return &HarnessResult{
			Root:      root,
			LogOutput: logs.String(),
			Err:       fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("MOVIEBOX_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Root:      root,
		Output:    out.String(),
		LogOutput: logs.String(),
		Sleeps:    sleeps,
		Err:       runErr,
		App:       testApp,
	}
}
