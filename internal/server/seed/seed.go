// Package seed creates the initial principal at start-up.
package seed

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/logging"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
)

// Registrar is the part of services.UserService the seeder needs.
type Registrar interface {
	Register(ctx context.Context, identifier, secret string) (*models.Principal, error)
}

// Principal registers identifier with secret unless it already exists.
// An empty identifier disables seeding. A duplicate, including one created by
// a concurrently starting instance, is not an error.
func Principal(ctx context.Context, r Registrar, identifier, secret string, l logging.Logger) error {
	if identifier == "" {
		l.Debug(ctx, "seeding disabled")
		return nil
	}

	_, err := r.Register(ctx, identifier, secret)
	switch {
	case err == nil:
		l.Info(ctx, "seed principal created", "identifier", identifier)
		return nil
	case errors.Is(err, common.ErrDuplicatePrincipal):
		l.Debug(ctx, "seed principal already present", "identifier", identifier)
		return nil
	default:
		return err
	}
}
