package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/dbx"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
)

// SQLiteRepository implements Repository on SQLite. Timestamps are stored as
// RFC 3339 text in UTC.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteSelectColumns = `SELECT id, number, holder, balance, created_at, updated_at FROM accounts`

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(s rowScanner) (*models.Account, error) {
	var (
		a                    models.Account
		createdAt, updatedAt string
	)
	if err := s.Scan(&a.ID, &a.Number, &a.Holder, &a.Balance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at %q: %w", createdAt, err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("bad updated_at %q: %w", updatedAt, err)
	}
	return &a, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	query := `INSERT INTO accounts (id, number, holder, balance, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Number, a.Holder, a.Balance, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateAccount
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, sqliteSelectColumns+` ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) GetByNumber(ctx context.Context, number string) (*models.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, sqliteSelectColumns+` WHERE number = ?`, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, a *models.Account) (*models.Account, error) {
	query := `UPDATE accounts SET holder = ?, balance = ?, updated_at = ? WHERE number = ?`

	res, err := r.db.ExecContext(ctx, query, a.Holder, a.Balance, formatTime(a.UpdatedAt), a.Number)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, number string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE number = ?`, number)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}
