// Package relay mirrors playback to a remote display. The player publishes
// an event when a movie starts, for every revealed segment and when it ends.
package relay

import "context"

// Kinds of playback events.
const (
	KindStarted  = "started"
	KindSegment  = "segment"
	KindFinished = "finished"
)

// Event is a single playback notification.
type Event struct {
	Kind    string
	MovieID string // lowercase hex, as used for content file names
	Title   string
	Index   int // 0-based segment position; only for KindSegment
	Total   int // number of segments
	Text    string
}

// Payload returns the event as a JSON-friendly map.
func (e Event) Payload() map[string]any {
	return map[string]any{
		"kind":     e.Kind,
		"movie_id": e.MovieID,
		"title":    e.Title,
		"index":    e.Index,
		"total":    e.Total,
		"text":     e.Text,
	}
}

// Publisher delivers playback events somewhere outside the console.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
