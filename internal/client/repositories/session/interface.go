// Package session persists the CLI's login session in the local SQLite file.
package session

import (
	"context"

	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
)

// Repository stores at most one session.
type Repository interface {
	Save(ctx context.Context, s *models.Session) error
	// Load returns (nil, nil) when nobody is logged in.
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}
