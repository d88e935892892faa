// Package prompt implements validated, retrying line input for an
// interactive console. A prompt keeps asking until a line both parses into
// the requested type and passes the caller's acceptance predicate.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInputClosed is returned by Get when the input stream ends before an
// acceptable value was read.
var ErrInputClosed = errors.New("input stream closed")

// Parser converts one trimmed line of text into a value of type T.
type Parser[T any] func(s string) (T, error)

// flusher is satisfied by buffered writers such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Prompter reads lines from an input and writes prompts to an output.
// It is not safe for concurrent use.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// New creates a Prompter reading from r and writing prompts to w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Get writes msg, reads a line and parses it with parse. A value is returned
// only once it parses and accept reports true; every rejected line is handed
// to onReject as an *InputError and the prompt is shown again. There is no
// retry limit.
//
// Get returns ErrInputClosed when the input ends, and any other read error
// wrapped. accept and onReject may be nil.
func Get[T any](p *Prompter, msg string, parse Parser[T], accept func(T) bool, onReject func(*InputError)) (T, error) {
	var zero T
	for {
		if err := p.show(msg); err != nil {
			return zero, err
		}

		line, err := p.r.ReadString('\n')
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return zero, fmt.Errorf("read input: %w", err)
			}
			// A last line without a newline still counts; an empty read is the end.
			if line == "" {
				return zero, ErrInputClosed
			}
		}

		value, rejection := evaluate(strings.TrimSpace(line), parse, accept)
		if rejection == nil {
			return value, nil
		}
		if onReject != nil {
			onReject(rejection)
		}
	}
}

func (p *Prompter) show(msg string) error {
	if _, err := io.WriteString(p.w, msg); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}
	if f, ok := p.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush prompt: %w", err)
		}
	}
	return nil
}

func evaluate[T any](s string, parse Parser[T], accept func(T) bool) (T, *InputError) {
	value, err := parse(s)
	if err != nil {
		var zero T
		return zero, &InputError{Kind: KindParse, Input: s, Err: err}
	}
	if accept != nil && !accept(value) {
		return value, &InputError{Kind: KindFalsePredicate, Input: s}
	}
	return value, nil
}
