package common

import (
	"errors"
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- GenerateRandByteArray ----------

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf := GenerateRandByteArray(n)
	if buf == nil {
		t.Fatalf("expected non-nil slice")
	}
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

func TestGenerateRandByteArray_EntropyHint(t *testing.T) {
	const n = 32
	a := GenerateRandByteArray(n)
	b := GenerateRandByteArray(n)

	if len(a) != n || len(b) != n {
		t.Fatalf("unexpected lengths: %d, %d", len(a), len(b))
	}

	identical := true
	for i := range a {
		if a[i] != b[i] {
			identical = false
			break
		}
	}
	if identical {
		t.Logf("warning: two GenerateRandByteArray(%d) results are identical; extremely unlikely", n)
	}
}

// ---------- ValidationError ----------

func TestValidationError_ErrorIsSortedAndStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"secret":     "is required",
		"identifier": "must be an email address",
	}}

	want := "validation error: identifier: must be an email address; secret: is required"
	if err.Error() != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", err.Error(), want)
	}
}

func TestNewValidationError_SingleField(t *testing.T) {
	err := NewValidationError("number", "is required")
	if len(err.Fields) != 1 || err.Fields["number"] != "is required" {
		t.Fatalf("unexpected fields: %v", err.Fields)
	}
}

// ---------- sentinel hierarchy ----------

func TestSentinels_WrapTheirKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"malformed", ErrMalformedToken, ErrInvalidToken},
		{"bad signature", ErrBadSignature, ErrInvalidToken},
		{"expired", ErrTokenExpired, ErrInvalidToken},
		{"not yet valid", ErrTokenNotYetValid, ErrInvalidToken},
		{"unknown principal", ErrUnknownPrincipal, ErrorUnauthorized},
		{"bad credential", ErrBadCredential, ErrorUnauthorized},
		{"duplicate principal", ErrDuplicatePrincipal, ErrorAlreadyExists},
		{"duplicate account", ErrDuplicateAccount, ErrorAlreadyExists},
		{"account not found", ErrAccountNotFound, ErrorNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.kind) {
				t.Fatalf("%v does not wrap %v", tc.err, tc.kind)
			}
		})
	}
}

func TestSentinels_CredentialFailuresAreDistinctInternally(t *testing.T) {
	if errors.Is(ErrUnknownPrincipal, ErrBadCredential) || errors.Is(ErrBadCredential, ErrUnknownPrincipal) {
		t.Fatal("credential failures must stay distinguishable inside the server")
	}
}
