package httpapi

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"github.com/dmitrijs2005/bankaccounts/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func principalOf(r *http.Request) string {
	p, _ := auth.PrincipalFromContext(r.Context())
	return p.Identifier
}

// accountNumber returns the {number} path parameter. chi routes on the raw
// path when it holds escapes, so the parameter may still be escaped.
func accountNumber(r *http.Request) string {
	raw := chi.URLParam(r, "number")
	if n, err := url.PathUnescape(raw); err == nil {
		return n
	}
	return raw
}

func (a *API) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req services.AccountInput
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	acc, err := a.accounts.Create(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "account created", "principal", principalOf(r), "number", acc.Number)
	writeJSON(w, http.StatusCreated, acc)
}

func (a *API) ListAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := a.accounts.List(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Debug(r.Context(), "accounts listed", "principal", principalOf(r), "count", len(list))
	writeJSON(w, http.StatusOK, list)
}

func (a *API) GetAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := a.accounts.Get(r.Context(), accountNumber(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Debug(r.Context(), "account read", "principal", principalOf(r), "number", acc.Number)
	writeJSON(w, http.StatusOK, acc)
}

func (a *API) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req services.AccountUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	acc, err := a.accounts.Update(r.Context(), accountNumber(r), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "account updated", "principal", principalOf(r), "number", acc.Number)
	writeJSON(w, http.StatusOK, acc)
}

func (a *API) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	number := accountNumber(r)
	if err := a.accounts.Delete(r.Context(), number); err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "account deleted", "principal", principalOf(r), "number", number)
	w.WriteHeader(http.StatusNoContent)
}
