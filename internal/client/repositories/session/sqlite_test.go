package session

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  id          INTEGER PRIMARY KEY CHECK (id = 1),
  server_url  TEXT NOT NULL,
  identifier  TEXT NOT NULL,
  token       TEXT NOT NULL,
  expires_at  TEXT NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestLoad_Empty_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	s, err := r.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSaveThenLoad(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	exp := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	require.NoError(t, r.Save(ctx, &models.Session{
		ServerURL:  "http://127.0.0.1:8080",
		Identifier: "ana",
		Token:      "a.b.c",
		ExpiresAt:  exp,
	}))

	s, err := r.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "ana", s.Identifier)
	assert.Equal(t, "a.b.c", s.Token)
	assert.True(t, s.ExpiresAt.Equal(exp))
}

func TestSave_ReplacesPreviousSession(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &models.Session{Identifier: "ana", Token: "t1", ExpiresAt: time.Now()}))
	require.NoError(t, r.Save(ctx, &models.Session{Identifier: "luis", Token: "t2", ExpiresAt: time.Now()}))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	assert.Equal(t, 1, n)

	s, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "luis", s.Identifier)
	assert.Equal(t, "t2", s.Token)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, &models.Session{Identifier: "ana", Token: "t", ExpiresAt: time.Now()}))
	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))

	s, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestLoad_BadExpiry(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := db.Exec(`INSERT INTO session VALUES (1, '', 'ana', 't', 'yesterday')`)
	require.NoError(t, err)

	_, err = r.Load(context.Background())
	require.Error(t, err)
}
