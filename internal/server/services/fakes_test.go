package services

import (
	"github.com/dmitrijs2005/bankaccounts/internal/dbx"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bankaccounts/internal/server/repositories/users"
)

// fakeManager overrides selected repositories of a real manager.
type fakeManager struct {
	repomanager.RepositoryManager
	users    users.Repository
	accounts accounts.Repository
}

func (f *fakeManager) Users(db dbx.DBTX) users.Repository {
	if f.users != nil {
		return f.users
	}
	return f.RepositoryManager.Users(db)
}

func (f *fakeManager) Accounts(db dbx.DBTX) accounts.Repository {
	if f.accounts != nil {
		return f.accounts
	}
	return f.RepositoryManager.Accounts(db)
}
