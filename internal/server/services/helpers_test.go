package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	_ "modernc.org/sqlite"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func setupDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m, err := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

func newTestUserService(t *testing.T, hasher auth.PasswordHasher) *UserService {
	t.Helper()
	db, m := setupDB(t)
	if hasher == nil {
		hasher = auth.NewBcryptHasher(bcrypt.MinCost)
	}
	tokens, err := auth.NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	s, err := NewUserService(db, m, hasher, tokens)
	require.NoError(t, err)
	return s
}

func int64Ptr(v int64) *int64 { return &v }
