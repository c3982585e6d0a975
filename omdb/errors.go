package omdb

import (
	"context"
	"errors"
	"fmt"
)

// ErrTransport matches every *TransportError via errors.Is.
var ErrTransport = errors.New("transport error")

// ErrDetailsNotFound is returned when the API has no record for an identifier.
var ErrDetailsNotFound = errors.New("details not found")

// TransportError is a network failure, timeout, undecodable body or non-2xx status.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("transport error: unexpected status %d", e.StatusCode)
	case e.Err != nil:
		return "transport error: " + e.Err.Error()
	default:
		return "transport error"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Timeout reports whether the request ran out of time.
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// SearchFailedError is a logical failure reported by the API, such as "Movie not found!".
type SearchFailedError struct {
	Message string
}

func (e *SearchFailedError) Error() string {
	return e.Message
}

// Message turns an error from this package into text fit for a user notice.
// Upstream messages are passed through verbatim.
func Message(err error) string {
	var searchErr *SearchFailedError
	if errors.As(err, &searchErr) {
		return searchErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if transportErr.Timeout() {
			return "The movie service took too long to answer"
		}
		return "Could not reach the movie service"
	}

	if errors.Is(err, ErrDetailsNotFound) {
		return "Title not found"
	}

	return err.Error()
}
