package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/moviebox/internal/catalog"
	"github.com/vk/moviebox/internal/ctxlog"
	"github.com/vk/moviebox/internal/playback"
	"github.com/vk/moviebox/internal/prompt"
)

const (
	minAge = 0
	maxAge = 150

	agePrompt       = "What is your age? "
	selectionPrompt = "Select a movie by typing in it's number: "
)

// Run executes the interactive session: ask the viewer's age, list the
// movies they may watch, let them pick one and play it. It returns
// prompt.ErrInputClosed when the input ends before a choice was made.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	p := prompt.New(a.inR, a.outW)

	age, err := prompt.Get(p, agePrompt, prompt.Int, prompt.Between(minAge, maxAge), a.rejectAge)
	if err != nil {
		return fmt.Errorf("reading age: %w", err)
	}
	a.logger.Debug("Age accepted.", "age", age)

	movies := catalog.Load(ctx, a.settings.Catalog.Path)

	fmt.Fprintln(a.outW)
	fmt.Fprintln(a.outW, "Amazing! Here is a list of movies you may watch:")

	watchable := movies.Watchable(age)
	if len(watchable) == 0 {
		fmt.Fprintln(a.outW, "Sorry, there are no movies you may watch.")
		a.logger.Debug("No watchable movies.", "catalog_size", movies.Len())
		return nil
	}
	printList(a.outW, watchable)

	fmt.Fprintln(a.outW)
	index, err := prompt.Get(p, selectionPrompt, prompt.Uint, prompt.Between[uint64](1, uint64(len(watchable))), a.rejectIndex)
	if err != nil {
		return fmt.Errorf("reading selection: %w", err)
	}
	selected := watchable[index-1]
	a.logger.Debug("Movie selected.", "index", index, "movie_id", selected.Movie.HexID())

	fmt.Fprintln(a.outW)

	pub := a.openRelay(ctx)
	defer func() {
		if err := pub.Close(); err != nil {
			a.logger.Warn("Could not close playback relay.", "error", err)
		}
	}()

	opts := append([]playback.Option{playback.WithPublisher(pub)}, a.playerOpts...)
	playback.New(a.settings.Content, a.outW, opts...).Watch(ctx, selected.Movie)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// printList writes the 1-based numbered list of entries.
func printList(w io.Writer, entries []catalog.Entry) {
	for i, e := range entries {
		fmt.Fprintf(w, "%d. %s by %s, FSK %d\n", i+1, e.Movie.Title, e.Movie.Director, e.Rating)
	}
}

func (a *App) rejectAge(e *prompt.InputError) {
	switch e.Kind {
	case prompt.KindFalsePredicate:
		fmt.Fprintf(a.outW, "Try again! The age must be between %d and %d.\n", minAge, maxAge)
	default:
		fmt.Fprintln(a.outW, "Try again! The age must be a number.")
	}
}

func (a *App) rejectIndex(e *prompt.InputError) {
	switch e.Kind {
	case prompt.KindFalsePredicate:
		fmt.Fprintln(a.outW, "Try again! The index must be in range.")
	default:
		fmt.Fprintln(a.outW, "Try again! The index must be a number.")
	}
}
