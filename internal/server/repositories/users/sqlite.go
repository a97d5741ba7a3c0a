package users

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

func (r *SQLiteRepository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	query := `INSERT INTO principals (id, identifier, secret_hash, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Identifier, p.SecretHash, p.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicatePrincipal
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *SQLiteRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.Principal, error) {
	query := `SELECT id, identifier, secret_hash, created_at FROM principals WHERE identifier = ?`

	var (
		p         models.Principal
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, query, identifier).Scan(&p.ID, &p.Identifier, &p.SecretHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("db error: bad created_at %q: %w", createdAt, err)
	}

	return &p, nil
}
