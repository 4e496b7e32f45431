package kalle

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrCanceled is wrapped by errors from requests stopped through
	// Client.Cancel or the client's registry.
	ErrCanceled = errors.New("request canceled")
)

// UnexpectedStatusError is returned when the response status differs from
// the expected code. Body holds at most the first 4KiB of the response.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%v: %d, body: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}
