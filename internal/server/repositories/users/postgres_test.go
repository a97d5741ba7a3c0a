package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertPrincipalQuery = `(?s)^INSERT\s+INTO\s+principals\s*\(id,\s*identifier,\s*secret_hash,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*$`
	selectPrincipalQuery = `(?s)^SELECT\s+id,\s*identifier,\s*secret_hash,\s*created_at\s+FROM\s+principals\s+WHERE\s+identifier\s*=\s*\$1\s*$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func testPrincipal() *models.Principal {
	return &models.Principal{
		ID:         "5f0c6f0e-7a53-4c57-9f0e-1f6c1d5b6a01",
		Identifier: "alice@example.com",
		SecretHash: "$2a$10$hash",
		CreatedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	p := testPrincipal()
	mock.ExpectExec(insertPrincipalQuery).
		WithArgs(p.ID, p.Identifier, p.SecretHash, p.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != p.ID || got.Identifier != "alice@example.com" {
		t.Fatalf("unexpected principal: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	p := testPrincipal()
	mock.ExpectExec(insertPrincipalQuery).
		WithArgs(p.ID, p.Identifier, p.SecretHash, p.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "principals_identifier_key"})

	_, err := repo.Create(context.Background(), p)
	if !errors.Is(err, common.ErrDuplicatePrincipal) {
		t.Fatalf("want common.ErrDuplicatePrincipal, got %v", err)
	}
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("duplicate must wrap common.ErrorAlreadyExists, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	p := testPrincipal()
	mock.ExpectExec(insertPrincipalQuery).
		WithArgs(p.ID, p.Identifier, p.SecretHash, p.CreatedAt).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), p)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByIdentifier_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	p := testPrincipal()
	rows := sqlmock.NewRows([]string{"id", "identifier", "secret_hash", "created_at"}).
		AddRow(p.ID, p.Identifier, p.SecretHash, p.CreatedAt)
	mock.ExpectQuery(selectPrincipalQuery).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByIdentifier(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByIdentifier error: %v", err)
	}
	if *got != *p {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestGetByIdentifier_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectPrincipalQuery).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByIdentifier(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByIdentifier_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectPrincipalQuery).
		WithArgs("alice").
		WillReturnError(errors.New("db err"))

	_, err := repo.GetByIdentifier(context.Background(), "alice")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
