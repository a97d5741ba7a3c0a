// Package services contains application services for the bankaccounts CLI.
// This file defines the authentication service: register, login, logout and
// access to the stored session.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/client/client"
	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
	"github.com/dmitrijs2005/bankaccounts/internal/client/repositories/session"
)

var (
	ErrNotLoggedIn    = errors.New(`not logged in, run "login" first`)
	ErrSessionExpired = errors.New(`session expired, run "login" again`)
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a principal on the server.
//   - Login: exchange credentials for a token and keep it as the session.
//   - Logout: forget the session. The token itself stays valid until expiry.
//   - Current: return the stored session if it belongs to this server and
//     has not expired.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, identifier string, secret []byte) error
	Login(ctx context.Context, identifier string, secret []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client    client.Client
	sessions  session.Repository
	serverURL string
	now       func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// the local session database.
func NewAuthService(c client.Client, db *sql.DB, serverURL string) AuthService {
	return &authService{
		client:    c,
		sessions:  session.NewSQLiteRepository(db),
		serverURL: serverURL,
		now:       time.Now,
	}
}

func (a *authService) Register(ctx context.Context, identifier string, secret []byte) error {
	return a.client.Register(ctx, identifier, string(secret))
}

func (a *authService) Login(ctx context.Context, identifier string, secret []byte) (*models.Session, error) {
	res, err := a.client.Login(ctx, identifier, string(secret))
	if err != nil {
		return nil, err
	}

	s := &models.Session{
		ServerURL:  a.serverURL,
		Identifier: identifier,
		Token:      res.Token,
		ExpiresAt:  res.ExpiresAt,
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil || s.ServerURL != a.serverURL {
		return nil, ErrNotLoggedIn
	}
	if s.Expired(a.now()) {
		return nil, ErrSessionExpired
	}
	return s, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
