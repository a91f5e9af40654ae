package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps the handler error mapping extensible.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	// ErrNotFound marks operations addressed at an id that does not exist.
	// Stores return it instead of failing hard so callers can treat a miss
	// as a no-op.
	ErrNotFound = errors.New("not found")

	// ErrUnsupported marks operations that are not valid for the record's
	// file type, e.g. duplicating an uploaded file instead of a page.
	ErrUnsupported = errors.New("operation not supported")

	// ErrValidation marks rejected input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized marks authentication failures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrPersistence marks a failed write to the durable store. Reads fail
	// open to an empty collection, but write failures must reach the caller
	// so the UI can surface them instead of silently losing data.
	ErrPersistence = errors.New("persistence failure")
)
