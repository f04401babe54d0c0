package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable is wrapped when the circuit breaker refuses a call
var ErrUnavailable = errors.New("reservation API unavailable")

// Error is returned for every failed call to the reservation API.
// StatusCode is zero when the request never got a response.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Transport() {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Transport reports whether the call failed before a response was read
func (e *Error) Transport() bool {
	return e.StatusCode == 0
}

// Retryable reports whether repeating the same call may succeed.
// Nothing in this module retries on its own; callers surface the flag.
func (e *Error) Retryable() bool {
	return e.Transport() || e.StatusCode >= http.StatusInternalServerError
}

// ServerMessage returns the message the reservation API sent back, if any
func ServerMessage(err error) string {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.Message
	}
	return ""
}

// IsRetryable reports whether err carries a retryable upstream failure
func IsRetryable(err error) bool {
	var upErr *Error
	return errors.As(err, &upErr) && upErr.Retryable()
}
