package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Authenticate runs the gate for every request. Rejected requests get 401
// with a Bearer challenge and never reach a handler; admitted requests carry
// the principal in their context.
func (a *API) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		d := a.gate.Evaluate(r.URL.Path, r.Header.Get(common.AuthorizationHeaderName))
		a.metrics.ObserveDecision(d)

		if !d.Admitted() {
			a.logger.Warn(ctx, "request rejected",
				"path", r.URL.Path,
				"reason", auth.RejectReason(d.Cause),
				"request_id", chimw.GetReqID(ctx),
			)
			a.writeError(w, r, d.Err)
			return
		}

		if !d.Public {
			a.logger.Debug(ctx, "request admitted", "path", r.URL.Path, "principal", d.Principal.Identifier)
			r = r.WithContext(auth.WithPrincipal(ctx, d.Principal))
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one line per request and records request metrics.
func (a *API) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		a.metrics.ObserveRequest(r.Method, strconv.Itoa(status), elapsed)
		a.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed,
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
