// Package auth holds the stateless authentication primitives of the server:
// the token service, password hashers, the request gate and the principal
// carried on a request context.
package auth

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum HMAC key size accepted by NewTokenService.
const MinSecretLength = 32

var (
	ErrSecretTooShort  = errors.New("token secret must be at least 32 bytes")
	ErrInvalidLifetime = errors.New("token lifetime must be positive")
	ErrEmptySubject    = errors.New("token subject is empty")
)

// Token is an issued access token. It is never stored server-side.
type Token struct {
	Text      string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// WithIssuer sets the "iss" claim written into issued tokens and required on
// verification.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) {
		s.issuer = issuer
	}
}

// TokenService issues and verifies HS256 tokens. It holds no mutable state
// after construction and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	now      func() time.Time
	parser   *jwt.Parser
}

func NewTokenService(secret []byte, lifetime time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if lifetime <= 0 {
		return nil, ErrInvalidLifetime
	}

	s := &TokenService{
		secret:   append([]byte(nil), secret...),
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}
	s.parser = jwt.NewParser(parserOpts...)

	return s, nil
}

// Lifetime returns the validity period of issued tokens.
func (s *TokenService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue signs a token for subject valid from now until now+lifetime.
// Timestamps have second precision.
func (s *TokenService) Issue(subject string) (*Token, error) {
	if subject == "" {
		return nil, ErrEmptySubject
	}

	iat := s.now().Truncate(time.Second)
	exp := iat.Add(s.lifetime).Truncate(time.Second)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	text, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{Text: text, Subject: subject, IssuedAt: iat, ExpiresAt: exp}, nil
}

// Verify checks tokenText and returns its subject.
//
// The signature is checked over the raw header and payload segments before
// the payload is decoded, so any modification of the claims surfaces as
// common.ErrBadSignature. Errors returned all wrap common.ErrInvalidToken.
func (s *TokenService) Verify(tokenText string) (string, error) {
	parts := strings.Split(tokenText, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", common.ErrMalformedToken
	}

	headerBytes, err := s.parser.DecodeSegment(parts[0])
	if err != nil {
		return "", common.ErrMalformedToken
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return "", common.ErrMalformedToken
	}
	if header.Alg != jwt.SigningMethodHS256.Alg() {
		return "", common.ErrBadSignature
	}

	sig, err := s.parser.DecodeSegment(parts[2])
	if err != nil {
		return "", common.ErrBadSignature
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, s.secret); err != nil {
		return "", common.ErrBadSignature
	}

	claims := &jwt.RegisteredClaims{}
	_, err = s.parser.ParseWithClaims(tokenText, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return "", common.ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "", common.ErrBadSignature
	default:
		return "", common.ErrMalformedToken
	}

	if claims.Subject == "" {
		return "", common.ErrMalformedToken
	}

	return claims.Subject, nil
}
