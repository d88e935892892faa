package prompt

import (
	"errors"
	"fmt"
)

// Kind classifies why a line of input was rejected.
type Kind int

const (
	// KindParse means the text could not be converted to the target type.
	KindParse Kind = iota
	// KindFalsePredicate means the value parsed but the predicate refused it.
	KindFalsePredicate
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "Parse"
	case KindFalsePredicate:
		return "FalsePredicate"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// InputError describes a rejected line. Err is set only for KindParse and
// holds the underlying conversion failure.
type InputError struct {
	Kind  Kind
	Input string
	Err   error
}

// Error implements the error interface for InputError.
func (e *InputError) Error() string {
	switch e.Kind {
	case KindFalsePredicate:
		return "input predicate returned false"
	default:
		return "the input could not be parsed into the desired type"
	}
}

// Unwrap returns the conversion failure for KindParse errors.
func (e *InputError) Unwrap() error { return e.Err }

// IsParse reports whether err is, or wraps, a parse rejection.
func IsParse(err error) bool {
	var e *InputError
	return errors.As(err, &e) && e.Kind == KindParse
}

// IsFalsePredicate reports whether err is, or wraps, a predicate rejection.
func IsFalsePredicate(err error) bool {
	var e *InputError
	return errors.As(err, &e) && e.Kind == KindFalsePredicate
}
