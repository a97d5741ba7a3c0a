package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable          = errors.New("server unavailable")
	ErrUnauthorized         = errors.New("not authenticated")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrServer               = errors.New("server error")
)

// APIError is a non-2xx answer from the server. It unwraps to one of the
// sentinel errors above, chosen by status code.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	kind       error
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d): %v", e.Message, e.StatusCode, e.Fields)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
