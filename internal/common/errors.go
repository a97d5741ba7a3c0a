// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// ErrorUnauthorized is the single outcome of a failed login. Every
	// credential failure wraps it.
	ErrorUnauthorized = errors.New("authentication failed")

	// ErrorUnauthenticated is the single outcome of a rejected request on the
	// protected surface.
	ErrorUnauthenticated = errors.New("not authenticated")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)

// Token verification outcomes. All of them wrap ErrInvalidToken.
var (
	ErrMalformedToken   = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrBadSignature     = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrTokenExpired     = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenNotYetValid = fmt.Errorf("%w: used before issued", ErrInvalidToken)
)

// Credential outcomes. Both wrap ErrorUnauthorized and must never be told
// apart outside the server.
var (
	ErrUnknownPrincipal = fmt.Errorf("%w: unknown principal", ErrorUnauthorized)
	ErrBadCredential    = fmt.Errorf("%w: bad credential", ErrorUnauthorized)
)

// Record-specific errors.
var (
	ErrDuplicatePrincipal = fmt.Errorf("principal %w", ErrorAlreadyExists)
	ErrDuplicateAccount   = fmt.Errorf("account %w", ErrorAlreadyExists)
	ErrAccountNotFound    = fmt.Errorf("account %w", ErrorNotFound)
)

// ValidationError carries field-level problems of a request body.
// Keys are the JSON field names.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns a ValidationError with a single field problem.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation error: " + strings.Join(parts, "; ")
}
