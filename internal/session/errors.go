package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpeed is returned when a non-positive words-per-minute value is requested.
	ErrInvalidSpeed = errors.New("speed must be a positive number of words per minute")

	// ErrEmptySource is returned when the source text has no tokens.
	ErrEmptySource = errors.New("no text to read")

	// ErrCorruptBookmark is returned when a bookmark points outside the current source.
	ErrCorruptBookmark = errors.New("bookmark is out of range for this source")
)

// PersistenceError reports a failed bookmark read or write.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s bookmark %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
