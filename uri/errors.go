package uri

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedURL is wrapped by [Error] when an absolute URL cannot be parsed.
	ErrMalformedURL = errors.New("malformed url")
	// ErrEmptyLocation is returned by [URL.Resolve] for an empty location.
	ErrEmptyLocation = errors.New("empty location")
)

// Error describes a URL that failed to parse.
type Error struct {
	Input string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *Error) Unwrap() error {
	return e.Err
}
