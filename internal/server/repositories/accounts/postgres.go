package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/dbx"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (id, number, holder, balance, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query, a.ID, a.Number, a.Holder, a.Balance, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Account, error) {
	query :=
		`SELECT id, number, holder, balance, created_at, updated_at FROM accounts
		 ORDER BY number
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Account, 0)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Number, &a.Holder, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByNumber(ctx context.Context, number string) (*models.Account, error) {
	query :=
		`SELECT id, number, holder, balance, created_at, updated_at FROM accounts
		 WHERE number = $1
		 `

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, number).
		Scan(&a.ID, &a.Number, &a.Holder, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.Account) (*models.Account, error) {
	query :=
		`UPDATE accounts SET holder = $2, balance = $3, updated_at = $4
		 WHERE number = $1
		 `

	res, err := r.db.ExecContext(ctx, query, a.Number, a.Holder, a.Balance, a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, number string) error {
	query := `DELETE FROM accounts WHERE number = $1`

	res, err := r.db.ExecContext(ctx, query, number)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// expectOneRow maps zero affected rows to common.ErrAccountNotFound.
func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrAccountNotFound
	}
	return nil
}
