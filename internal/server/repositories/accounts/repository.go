// Package accounts provides the record store for bank accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
)

// Repository stores accounts keyed by their unique number.
//
// Create fails with common.ErrDuplicateAccount when the number is taken.
// GetByNumber, Update and Delete fail with common.ErrAccountNotFound when no
// account has the number.
type Repository interface {
	Create(ctx context.Context, a *models.Account) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	GetByNumber(ctx context.Context, number string) (*models.Account, error)
	Update(ctx context.Context, a *models.Account) (*models.Account, error)
	Delete(ctx context.Context, number string) error
}
