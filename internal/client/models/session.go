package models

import "time"

// Session is the token the CLI obtained at login, kept between invocations.
type Session struct {
	ServerURL  string
	Identifier string
	Token      string
	ExpiresAt  time.Time
}

// Expired reports whether the token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
