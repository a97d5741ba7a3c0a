package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/dbx"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AccountInput is the body of an account creation request.
type AccountInput struct {
	Number  string `json:"number" validate:"required,max=34,accountnumber"`
	Holder  string `json:"holder" validate:"required,max=255"`
	Balance *int64 `json:"balance" validate:"required,gte=0"`
}

// AccountUpdate is the body of an account update request. The number is
// taken from the path and cannot change.
type AccountUpdate struct {
	Holder  string `json:"holder" validate:"required,max=255"`
	Balance *int64 `json:"balance" validate:"required,gte=0"`
}

// AccountService implements CRUD over account records.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m, now: time.Now}
}

func (s *AccountService) Create(ctx context.Context, in AccountInput) (*models.Account, error) {
	in.Number = strings.TrimSpace(in.Number)
	in.Holder = strings.TrimSpace(in.Holder)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a := &models.Account{
		ID:        uuid.NewString(),
		Number:    in.Number,
		Holder:    in.Holder,
		Balance:   *in.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repomanager.Accounts(s.db).Create(ctx, a)
	if err != nil {
		return nil, storeError(err)
	}
	return created, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	list, err := s.repomanager.Accounts(s.db).List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *AccountService) Get(ctx context.Context, number string) (*models.Account, error) {
	a, err := s.repomanager.Accounts(s.db).GetByNumber(ctx, number)
	if err != nil {
		return nil, storeError(err)
	}
	return a, nil
}

// Update replaces holder and balance of the account in one transaction.
func (s *AccountService) Update(ctx context.Context, number string, in AccountUpdate) (*models.Account, error) {
	in.Holder = strings.TrimSpace(in.Holder)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		a, err := repo.GetByNumber(ctx, number)
		if err != nil {
			return err
		}

		a.Holder = in.Holder
		a.Balance = *in.Balance
		a.UpdatedAt = s.now().UTC()

		updated, err = repo.Update(ctx, a)
		return err
	})
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, number string) error {
	if err := s.repomanager.Accounts(s.db).Delete(ctx, number); err != nil {
		return storeError(err)
	}
	return nil
}

// storeError keeps not-found and duplicate outcomes and turns everything
// else into common.ErrorInternal.
func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
		return err
	}
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
