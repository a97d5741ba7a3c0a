package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bankaccounts/internal/client/client"
	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
)

// AccountService runs account calls with the stored session's token.
type AccountService interface {
	List(ctx context.Context) ([]models.Account, error)
	Get(ctx context.Context, number string) (*models.Account, error)
	Create(ctx context.Context, in models.AccountInput) (*models.Account, error)
	Update(ctx context.Context, number string, in models.AccountUpdate) (*models.Account, error)
	Delete(ctx context.Context, number string) error
}

type accountService struct {
	client client.Client
	auth   AuthService
}

func NewAccountService(c client.Client, auth AuthService) AccountService {
	return &accountService{client: c, auth: auth}
}

// withToken runs call with the current token. When the server rejects the
// token the local session is dropped.
func (s *accountService) withToken(ctx context.Context, call func(token string) error) error {
	sess, err := s.auth.Current(ctx)
	if err != nil {
		return err
	}

	err = call(sess.Token)
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := s.auth.Logout(ctx); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return err
}

func (s *accountService) List(ctx context.Context) ([]models.Account, error) {
	var res []models.Account
	err := s.withToken(ctx, func(token string) (err error) {
		res, err = s.client.ListAccounts(ctx, token)
		return err
	})
	return res, err
}

func (s *accountService) Get(ctx context.Context, number string) (*models.Account, error) {
	var res *models.Account
	err := s.withToken(ctx, func(token string) (err error) {
		res, err = s.client.GetAccount(ctx, token, number)
		return err
	})
	return res, err
}

func (s *accountService) Create(ctx context.Context, in models.AccountInput) (*models.Account, error) {
	var res *models.Account
	err := s.withToken(ctx, func(token string) (err error) {
		res, err = s.client.CreateAccount(ctx, token, in)
		return err
	})
	return res, err
}

func (s *accountService) Update(ctx context.Context, number string, in models.AccountUpdate) (*models.Account, error) {
	var res *models.Account
	err := s.withToken(ctx, func(token string) (err error) {
		res, err = s.client.UpdateAccount(ctx, token, number, in)
		return err
	})
	return res, err
}

func (s *accountService) Delete(ctx context.Context, number string) error {
	return s.withToken(ctx, func(token string) error {
		return s.client.DeleteAccount(ctx, token, number)
	})
}
