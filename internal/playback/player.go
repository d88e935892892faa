// Package playback "plays" a movie by revealing the segments of its content
// file one after another with a fixed pause in between.
package playback

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vk/moviebox/internal/catalog"
	"github.com/vk/moviebox/internal/config"
	"github.com/vk/moviebox/internal/ctxlog"
	"github.com/vk/moviebox/internal/relay"
)

// SleepFunc pauses for d or until ctx is done, whichever comes first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Player reveals movie contents on an output stream.
type Player struct {
	settings  config.ContentSettings
	outW      io.Writer
	sleep     SleepFunc
	publisher relay.Publisher
}

// Option customizes a Player.
type Option func(*Player)

// WithSleep replaces the pause between segments, mainly for tests.
func WithSleep(fn SleepFunc) Option {
	return func(p *Player) { p.sleep = fn }
}

// WithPublisher mirrors playback events to pub.
func WithPublisher(pub relay.Publisher) Option {
	return func(p *Player) { p.publisher = pub }
}

// New creates a Player that reads contents as described by settings and
// writes them to outW.
func New(settings config.ContentSettings, outW io.Writer, opts ...Option) *Player {
	p := &Player{
		settings:  settings,
		outW:      outW,
		sleep:     Sleep,
		publisher: relay.Nop{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ContentPath returns the content file of m: <dir>/<hex id><extension>.
func (p *Player) ContentPath(m catalog.Movie) string {
	return filepath.Join(p.settings.Dir, m.HexID()+p.settings.Extension)
}

// Segments splits content on the separator. Text around each separator is
// kept verbatim, so a trailing separator produces an empty last segment.
func (p *Player) Segments(content string) []string {
	return strings.Split(content, p.settings.Separator)
}

// Watch plays m. Failures are logged and end playback; nothing is returned
// to the caller. Cancelling ctx stops playback before the next segment.
func (p *Player) Watch(ctx context.Context, m catalog.Movie) {
	logger := ctxlog.FromContext(ctx).With("movie_id", m.HexID())
	fmt.Fprintf(p.outW, "Watching %s by %s...\n", m.Title, m.Director)

	path := p.ContentPath(m)
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Could not load contents for movie.", "title", m.Title, "path", path, "error", err)
		return
	}

	segments := p.Segments(string(content))
	logger.Debug("Playback started.", "segments", len(segments), "delay", p.settings.Delay)
	p.publish(ctx, relay.Event{Kind: relay.KindStarted, MovieID: m.HexID(), Title: m.Title, Total: len(segments)})

	for i, segment := range segments {
		if err := p.sleep(ctx, p.settings.Delay); err != nil {
			logger.Info("Playback interrupted.", "segment", i, "reason", err)
			return
		}
		if _, err := io.WriteString(p.outW, segment); err != nil {
			logger.Error("Could not write segment.", "segment", i, "error", err)
			return
		}
		if f, ok := p.outW.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
		p.publish(ctx, relay.Event{
			Kind:    relay.KindSegment,
			MovieID: m.HexID(),
			Title:   m.Title,
			Index:   i,
			Total:   len(segments),
			Text:    segment,
		})
	}

	p.publish(ctx, relay.Event{Kind: relay.KindFinished, MovieID: m.HexID(), Title: m.Title, Total: len(segments)})
	logger.Debug("Playback finished.")
}

func (p *Player) publish(ctx context.Context, ev relay.Event) {
	if err := p.publisher.Publish(ctx, ev); err != nil {
		ctxlog.FromContext(ctx).Warn("Could not relay playback event.", "kind", ev.Kind, "error", err)
	}
}

// Sleep waits for d unless ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
