// Package config loads runtime configuration for the bankaccounts CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed with --config.
//  3. Command-line flags (--server, --timeout, --session-db), which
//     override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either a
// string like "5s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "5s",
//	  "session_db": "/home/me/.bankaccounts/session.db"
//	}
package config
