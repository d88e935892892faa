package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vk/moviebox/internal/ctxlog"
)

const (
	fieldDelimiter = ","
	fieldCount     = 4
)

var (
	// ErrMissingField marks a line with fewer than four fields.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidID marks a line whose first field is not a hexadecimal integer.
	ErrInvalidID = errors.New("invalid ID")
	// ErrInvalidRating marks a line whose fourth field is not a decimal integer.
	ErrInvalidRating = errors.New("invalid FSK value")
)

// LineError describes a catalog line that was skipped.
type LineError struct {
	Line  int    // 1-based; 0 when parsed outside a file
	Title string // set when the title field was readable
	Err   error
}

func (e *LineError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(e.Err.Error())
	if e.Title != "" {
		fmt.Fprintf(&b, " for movie '%s'", e.Title)
	}
	return b.String()
}

func (e *LineError) Unwrap() error { return e.Err }

// ParseLine parses one `hex_id,title,director,rating` line. Fields are
// trimmed; fields after the fourth are ignored.
func ParseLine(line string) (Entry, error) {
	fields := strings.Split(line, fieldDelimiter)
	if len(fields) < fieldCount {
		return Entry{}, &LineError{Err: fmt.Errorf("%w: want %d fields, got %d", ErrMissingField, fieldCount, len(fields))}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	id, err := strconv.ParseInt(fields[0], 16, 64)
	if err != nil {
		return Entry{}, &LineError{Err: fmt.Errorf("%w %q: %w", ErrInvalidID, fields[0], err)}
	}

	title, director := fields[1], fields[2]
	rating, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return Entry{}, &LineError{Title: title, Err: fmt.Errorf("%w %q: %w", ErrInvalidRating, fields[3], err)}
	}

	return Entry{
		Movie:  Movie{ID: id, Title: title, Director: director},
		Rating: int(rating),
	}, nil
}

// Load reads the catalog file at path. It never fails: an unreadable file
// yields an empty catalog and a read error mid-file keeps what was parsed so
// far. Every problem is logged.
func Load(ctx context.Context, path string) *Catalog {
	logger := ctxlog.FromContext(ctx).With("path", path)

	f, err := os.Open(path)
	if err != nil {
		logger.Error("Could not read movie list.", "error", err)
		return New()
	}
	defer f.Close()

	c, err := Parse(ctx, f)
	if err != nil {
		logger.Error("Interrupted while reading movie list.", "error", err, "loaded", c.Len())
		return c
	}

	logger.Debug("Movie list loaded.", "movies", c.Len())
	return c
}

// Parse builds a catalog from r, one entry per line. Blank lines are skipped
// silently and malformed lines are logged and skipped. A later line replaces
// an earlier one with the same ID. The returned catalog is never nil, even
// when a read error is returned. Lines may be of any length.
func Parse(ctx context.Context, r io.Reader) (*Catalog, error) {
	c := New()

	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, readErr := br.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return c, fmt.Errorf("read movie list: %w", readErr)
		}
		if line == "" && readErr != nil {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			parseInto(ctx, c, line, lineNo)
		}
		if readErr != nil {
			break
		}
	}

	return c, nil
}

// parseInto adds line to c, or logs why it was skipped.
func parseInto(ctx context.Context, c *Catalog, line string, lineNo int) {
	logger := ctxlog.FromContext(ctx)

	entry, err := ParseLine(line)
	if err != nil {
		var lineErr *LineError
		if errors.As(err, &lineErr) {
			lineErr.Line = lineNo
		}
		logger.Warn("Skipping malformed movie line.", "error", err)
		return
	}

	if prev, ok := c.Get(entry.Movie.ID); ok {
		logger.Debug("Movie ID redefined, keeping the later line.", "id", entry.Movie.HexID(), "previous_title", prev.Movie.Title, "title", entry.Movie.Title)
	}
	c.Put(entry)
}
