// Package users provides the credential store: persistence of principals
// for PostgreSQL and SQLite.
package users

import (
	"context"

	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
)

// Repository stores principals. Create fails with common.ErrDuplicatePrincipal
// when the identifier is taken; GetByIdentifier fails with common.ErrorNotFound
// when absent.
type Repository interface {
	Create(ctx context.Context, p *models.Principal) (*models.Principal, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.Principal, error)
}
