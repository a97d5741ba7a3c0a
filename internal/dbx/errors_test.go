package dbx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation_Postgres(t *testing.T) {
	require.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	require.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS u (name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `DELETE FROM u`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO u(name) VALUES ('alice')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO u(name) VALUES ('alice')`)
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err), "got %v", err)

	_, err = db.ExecContext(ctx, `INSERT INTO u(name) VALUES (NULL)`)
	require.Error(t, err)
	require.False(t, IsUniqueViolation(err), "NOT NULL is not a unique violation: %v", err)
}

func TestIsUniqueViolation_Other(t *testing.T) {
	require.False(t, IsUniqueViolation(nil))
	require.False(t, IsUniqueViolation(errors.New("UNIQUE constraint failed")))
}
