package e621

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidArgument reports malformed caller input, detected before any
// network call. Match with errors.Is.
var ErrInvalidArgument = errors.New("e621: invalid argument")

// ErrAuthenticationRequired reports an authenticated operation invoked on a
// client with no configured credentials.
var ErrAuthenticationRequired = errors.New("e621: authentication required")

// APIError describes a non-2xx response from the API. Transport-level
// failures (DNS, connection, TLS) are never wrapped into an APIError; they
// propagate as-is from the underlying transport.
type APIError struct {
	StatusCode int
	Message    string
	Method     string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("e621: %s %s returned %d: %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
}

// BadRequest reports whether the server rejected the request as malformed.
func (e *APIError) BadRequest() bool { return e.StatusCode == http.StatusBadRequest }

// Unauthorized reports whether the request lacked valid credentials.
func (e *APIError) Unauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// Forbidden reports whether the credentials lack access to the resource.
func (e *APIError) Forbidden() bool { return e.StatusCode == http.StatusForbidden }

// NotFound reports whether the requested resource does not exist.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// RateLimited reports whether the server throttled the request. The client
// performs no backoff or retry of its own.
func (e *APIError) RateLimited() bool { return e.StatusCode == http.StatusTooManyRequests }
