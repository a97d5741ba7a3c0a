package client

import (
	"context"

	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
)

// Client is the bankaccounts HTTP API as seen by the CLI. Account calls take
// the bearer token obtained from Login.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, identifier, secret string) error
	Login(ctx context.Context, identifier, secret string) (*models.LoginResult, error)

	ListAccounts(ctx context.Context, token string) ([]models.Account, error)
	GetAccount(ctx context.Context, token, number string) (*models.Account, error)
	CreateAccount(ctx context.Context, token string, in models.AccountInput) (*models.Account, error)
	UpdateAccount(ctx context.Context, token, number string, in models.AccountUpdate) (*models.Account, error)
	DeleteAccount(ctx context.Context, token, number string) error
}
