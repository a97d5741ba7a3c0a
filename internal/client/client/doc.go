// Package client contains the CLI's side of the bankaccounts HTTP API.
//
// # Overview
//
// The package provides:
//  1. The Client interface: register, login, ping and the account resource
//     calls.
//  2. HTTPClient, its implementation over net/http. It sends the bearer
//     token in the Authorization header and turns non-2xx answers into
//     *APIError values.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file that keeps the session between CLI invocations.
//
// # Error Handling
//
// Callers match conditions with errors.Is: ErrUnavailable for transport
// failures, ErrUnauthorized for a missing, expired or rejected token,
// ErrAuthenticationFailed for bad credentials at login, ErrNotFound,
// ErrConflict, ErrInvalidInput and ErrServer for the remaining statuses.
// errors.As with *APIError exposes the status code and per-field messages.
package client
