package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/server/services"
)

type loginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register handles POST /api/register.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req services.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	p, err := a.users.Register(r.Context(), req.Identifier, req.Secret)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	a.logger.Info(r.Context(), "principal registered", "identifier", p.Identifier)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("principal registered"))
}

// Login handles POST /api/login. Unknown identifiers and wrong secrets get
// the same response.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req services.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	token, err := a.users.Login(r.Context(), req.Identifier, req.Secret)
	if err != nil {
		a.metrics.ObserveLogin(false)
		a.writeError(w, r, err)
		return
	}
	a.metrics.ObserveLogin(true)

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     token.Text,
		TokenType: common.BearerScheme,
		ExpiresAt: token.ExpiresAt.UTC(),
	})
}
