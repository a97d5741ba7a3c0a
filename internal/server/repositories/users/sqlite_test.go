package users

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/server/migrations"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
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

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))
	return db
}

func newPrincipal(identifier string) *models.Principal {
	return &models.Principal{
		ID:         uuid.NewString(),
		Identifier: identifier,
		SecretHash: "hash-of-" + identifier,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestSQLite_CreateAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	p := newPrincipal("alice@example.com")
	_, err := r.Create(ctx, p)
	require.NoError(t, err)

	got, err := r.GetByIdentifier(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Identifier, got.Identifier)
	assert.Equal(t, p.SecretHash, got.SecretHash)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", p.CreatedAt, got.CreatedAt)
}

func TestSQLite_GetByIdentifier_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByIdentifier(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_Create_Duplicate(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	_, err := r.Create(ctx, newPrincipal("alice@example.com"))
	require.NoError(t, err)

	_, err = r.Create(ctx, newPrincipal("alice@example.com"))
	assert.ErrorIs(t, err, common.ErrDuplicatePrincipal)
}

func TestSQLite_Create_ConcurrentSameIdentifier(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	const n = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create(ctx, newPrincipal("race@example.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, common.ErrDuplicatePrincipal):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, duplicates)
}

func TestSQLite_ClosedDB_Wrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.GetByIdentifier(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
