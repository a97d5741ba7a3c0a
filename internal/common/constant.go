// Package common contains shared constants and sentinel errors used across
// the bankaccounts server and client.
package common

// AuthorizationHeaderName is the HTTP header (and gRPC metadata key, lower
// case) that carries the bearer token on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the authorization scheme expected in front of the token.
const BearerScheme = "Bearer"
