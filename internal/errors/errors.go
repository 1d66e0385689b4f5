package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types for the station portal
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidSession  = errors.New("invalid session")

	// Login flow errors
	ErrInvalidState       = errors.New("invalid state parameter")
	ErrMissingCode        = errors.New("missing code or state parameter")
	ErrAuthorizationError = errors.New("authorization failed")
	ErrMissingSubject     = errors.New("userinfo missing sub claim")
	ErrInvalidNonce       = errors.New("invalid nonce")

	// General errors
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// HTTPError is an error that carries the HTTP status code it should be reported with.
type HTTPError struct {
	Code int
	Err  error
}

func (e *HTTPError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Code)
	}
	return e.Err.Error()
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError wraps err with an HTTP status code
func NewHTTPError(code int, err error) *HTTPError {
	return &HTTPError{Code: code, Err: err}
}

// StatusCode returns the status carried by an HTTPError in err's chain, or 500
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Code != 0 {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
