package auth

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
)

// ErrMissingBearer is the rejection cause when no "Bearer <token>" value was
// presented.
var ErrMissingBearer = errors.New("missing bearer token")

// FilterState is a step of a single request evaluation.
type FilterState int

const (
	StateStart FilterState = iota
	StateTokenExtracted
	StateVerified
	StateAdmitted
	StateRejected
)

func (s FilterState) String() string {
	switch s {
	case StateStart:
		return "START"
	case StateTokenExtracted:
		return "TOKEN_EXTRACTED"
	case StateVerified:
		return "VERIFIED"
	case StateAdmitted:
		return "ADMITTED"
	case StateRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Decision is the outcome of Gate.Evaluate.
//
// Err is what the caller may expose (always common.ErrorUnauthenticated on
// rejection). Cause keeps the underlying reason for logs and metrics only.
type Decision struct {
	State     FilterState
	Principal Principal
	Public    bool
	Err       error
	Cause     error
}

// Admitted reports whether the request may proceed.
func (d Decision) Admitted() bool {
	return d.State == StateAdmitted
}

// TokenVerifier is the part of TokenService the gate depends on.
type TokenVerifier interface {
	Verify(tokenText string) (string, error)
}

// Gate decides, per request, whether a call to a path may proceed. It holds
// no per-request state and is safe for concurrent use.
type Gate struct {
	verifier TokenVerifier
	exact    map[string]struct{}
	prefixes []string
}

// NewGate builds a gate. Entries of publicPaths ending in "*" match any path
// with that prefix; all others must match exactly.
func NewGate(verifier TokenVerifier, publicPaths []string) *Gate {
	g := &Gate{
		verifier: verifier,
		exact:    make(map[string]struct{}, len(publicPaths)),
	}
	for _, p := range publicPaths {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			g.prefixes = append(g.prefixes, prefix)
			continue
		}
		g.exact[p] = struct{}{}
	}
	return g
}

// IsPublic reports whether path is on the allow-list.
func (g *Gate) IsPublic(path string) bool {
	if _, ok := g.exact[path]; ok {
		return true
	}
	for _, prefix := range g.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Evaluate runs the filter for one request. authorizationValue is the raw
// value of the Authorization header (or metadata entry), possibly empty.
func (g *Gate) Evaluate(path, authorizationValue string) Decision {
	d := Decision{State: StateStart}

	if g.IsPublic(path) {
		d.State = StateAdmitted
		d.Public = true
		return d
	}

	token, ok := ExtractBearer(authorizationValue)
	if !ok {
		return reject(d, ErrMissingBearer)
	}
	d.State = StateTokenExtracted

	subject, err := g.verifier.Verify(token)
	if err != nil {
		return reject(d, err)
	}
	d.State = StateVerified

	d.Principal = Principal{Identifier: subject}
	d.State = StateAdmitted
	return d
}

func reject(d Decision, cause error) Decision {
	d.State = StateRejected
	d.Err = common.ErrorUnauthenticated
	d.Cause = cause
	return d
}

// ExtractBearer returns the token of a "Bearer <token>" value. The scheme is
// matched case-insensitively.
func ExtractBearer(value string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// RejectReason maps a rejection cause to a short label for logs and metrics.
func RejectReason(cause error) string {
	switch {
	case cause == nil:
		return ""
	case errors.Is(cause, ErrMissingBearer):
		return "missing_token"
	case errors.Is(cause, common.ErrTokenExpired):
		return "expired"
	case errors.Is(cause, common.ErrTokenNotYetValid):
		return "not_yet_valid"
	case errors.Is(cause, common.ErrBadSignature):
		return "bad_signature"
	case errors.Is(cause, common.ErrMalformedToken):
		return "malformed"
	default:
		return "invalid"
	}
}
