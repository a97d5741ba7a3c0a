package models

import (
	"testing"
	"time"
)

func TestSession_Expired(t *testing.T) {
	exp := time.Unix(1_700_000_000, 0)
	s := &Session{ExpiresAt: exp}

	if s.Expired(exp.Add(-time.Second)) {
		t.Fatal("session should be valid before expiry")
	}
	if !s.Expired(exp) {
		t.Fatal("session should be expired at expiry")
	}
	if !s.Expired(exp.Add(time.Second)) {
		t.Fatal("session should be expired after expiry")
	}
}
