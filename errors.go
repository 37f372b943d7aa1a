package itemfetch

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Client.Request. Per-attempt failures unwrap to
// ErrTransport or ErrMalformedResponse; the terminal error always unwraps to
// ErrRetriesExhausted regardless of what the last attempt failed with.
var (
	// ErrTransport marks a failed attempt: network error, timeout, or a
	// non-success status. Timeouts are not distinguished from other
	// transport failures.
	ErrTransport = errors.New("transport failure")

	// ErrMalformedResponse marks a successful exchange whose body does not
	// match the expected items payload shape.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrRetriesExhausted is returned once every attempt in the budget has
	// failed. It wraps the last attempt error.
	ErrRetriesExhausted = errors.New("retries exhausted")
)

// StatusError is a transport failure carrying the non-success status code.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Status)
}

// Unwrap classifies a status failure as a transport failure.
func (e *StatusError) Unwrap() error { return ErrTransport }
