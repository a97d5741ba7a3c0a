package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bankaccounts/internal/dbx"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager vends dialect-specific repositories bound to a DBTX
// (a *sql.DB or a *sql.Tx) and migrates the schema.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Accounts(db dbx.DBTX) accounts.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewRepositoryManager returns the manager for a database driver name
// ("postgres" or "sqlite").
func NewRepositoryManager(driver string) (RepositoryManager, error) {
	switch driver {
	case "postgres":
		return NewPostgresRepositoryManager()
	case "sqlite":
		return NewSQLiteRepositoryManager()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLDriverName maps a configured driver to the database/sql driver name it
// is registered under.
func SQLDriverName(driver string) string {
	if driver == "postgres" {
		return "pgx"
	}
	return driver
}
