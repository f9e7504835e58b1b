// Package apperr defines the error kinds shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a listing, user or message target is missing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique value (e.g. email) is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials is returned by signin. It never says which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when the caller's role or ownership does not permit the action.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnauthenticated is returned when no valid session token was presented.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalid is returned for malformed or incomplete input.
	ErrInvalid = errors.New("invalid input")
)

// Status maps an error to its HTTP status code. Each kind has its own code.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalid):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing text for an error. Internal errors are
// reduced to a generic message so store details do not leak.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return ErrInvalidCredentials.Error()
	case Status(err) == http.StatusInternalServerError:
		return "internal error"
	default:
		return err.Error()
	}
}
