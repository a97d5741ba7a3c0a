// Package services contains server-side business logic: authentication of
// principals and the account resource operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"github.com/dmitrijs2005/bankaccounts/internal/server/models"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Credentials is the transient identifier/secret pair of a login or
// registration request. It is never stored or logged.
type Credentials struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Secret     string `json:"secret" validate:"required,max=72"`
}

// UserService authenticates principals, registers new ones and issues tokens.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      *auth.TokenService
	dummyHash   string
	now         func() time.Time
}

// NewUserService constructs a UserService. A dummy hash is computed once so
// that lookups of unknown identifiers pay the same hashing cost as real ones.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens *auth.TokenService) (*UserService, error) {
	dummy, err := hasher.Hash(string(common.GenerateRandByteArray(16)))
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy hash: %w", err)
	}
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		dummyHash:   dummy,
		now:         time.Now,
	}, nil
}

// Authenticate checks secret against the stored hash of identifier.
//
// Unknown identifiers yield common.ErrUnknownPrincipal and wrong secrets
// common.ErrBadCredential; both wrap common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, identifier, secret string) (*models.Principal, error) {
	repo := s.repomanager.Users(s.db)
	p, err := repo.GetByIdentifier(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(secret, s.dummyHash)
			return nil, common.ErrUnknownPrincipal
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(secret, p.SecretHash) {
		return nil, common.ErrBadCredential
	}

	return p, nil
}

// Register creates a principal. The store's uniqueness constraint decides
// concurrent registrations of one identifier: the loser gets
// common.ErrDuplicatePrincipal.
func (s *UserService) Register(ctx context.Context, identifier, secret string) (*models.Principal, error) {
	in := Credentials{Identifier: strings.TrimSpace(identifier), Secret: secret}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Secret)
	if err != nil {
		if errors.Is(err, auth.ErrSecretTooLong) {
			return nil, common.NewValidationError("secret", "must be at most 72 bytes")
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	p := &models.Principal{
		ID:         uuid.NewString(),
		Identifier: in.Identifier,
		SecretHash: hash,
		CreatedAt:  s.now().UTC(),
	}

	repo := s.repomanager.Users(s.db)
	created, err := repo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, common.ErrDuplicatePrincipal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return created, nil
}

// Login authenticates and, on success, issues a token for the principal.
func (s *UserService) Login(ctx context.Context, identifier, secret string) (*auth.Token, error) {
	p, err := s.Authenticate(ctx, identifier, secret)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(p.Identifier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return token, nil
}
