// Package cli implements the bankaccounts command-line client: cobra
// commands for registration, login and the account resource, backed by the
// HTTP API client and a local session file.
package cli
