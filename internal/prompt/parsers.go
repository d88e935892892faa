package prompt

import (
	"strconv"
	"strings"
)

// Int parses a signed 32-bit base-10 integer. Negative numbers parse
// successfully and are left for the predicate to judge; values outside the
// 32-bit range are parse errors.
func Int(s string) (int, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int(v), err
}

// Uint parses an unsigned base-10 integer, such as a 1-based list position.
// One leading plus sign is allowed; a minus sign is a parse error.
func Uint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 64)
}

// Between returns a predicate accepting integers in [lo, hi].
func Between[T ~int | ~int64 | ~uint64](lo, hi T) func(T) bool {
	return func(v T) bool { return v >= lo && v <= hi }
}
