// Package catalog holds the in-memory movie catalog: movies keyed by ID with
// the minimum age (FSK rating) required to watch them.
package catalog

import (
	"sort"
	"strconv"
)

// Movie is a single catalog title. Identity is defined by ID alone; two
// movies with the same ID are the same entity whatever their title.
type Movie struct {
	ID       int64
	Title    string
	Director string
}

// HexID renders the ID as lowercase hexadecimal of its 64-bit pattern. It is
// the name under which the movie's content file is stored.
func (m Movie) HexID() string {
	return strconv.FormatUint(uint64(m.ID), 16)
}

// Entry associates a movie with its age rating.
type Entry struct {
	Movie  Movie
	Rating int
}

// Catalog maps movie IDs to entries. It is filled once by Load or Parse and
// only read afterwards.
type Catalog struct {
	entries map[int64]Entry
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[int64]Entry)}
}

// Put inserts e, replacing any entry with the same movie ID.
func (c *Catalog) Put(e Entry) {
	c.entries[e.Movie.ID] = e
}

// Get returns the entry for id.
func (c *Catalog) Get(id int64) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of distinct movies.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all entries ordered by ID.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Movie.ID < out[j].Movie.ID })
	return out
}

// Watchable returns the entries whose rating does not exceed age, sorted by
// title. Equal titles keep ID order.
func (c *Catalog) Watchable(age int) []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.Entries() {
		if e.Rating <= age {
			out = append(out, e)
		}
	}
	SortByTitle(out)
	return out
}

// SortByTitle orders entries by title with a stable sort.
func SortByTitle(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Movie.Title < entries[j].Movie.Title
	})
}
