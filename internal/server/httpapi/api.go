// Package httpapi is the HTTP surface of the server: login and registration,
// the account resource API, and the public documentation, health and metrics
// endpoints. Every request passes the authentication gate first.
package httpapi

import (
	_ "embed"
	"net/http"

	"github.com/dmitrijs2005/bankaccounts/internal/logging"
	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"github.com/dmitrijs2005/bankaccounts/internal/server/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	openapimw "github.com/go-openapi/runtime/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var openapiSpec []byte

// API holds the dependencies needed by the HTTP handlers.
type API struct {
	users    *services.UserService
	accounts *services.AccountService
	gate     *auth.Gate
	logger   logging.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

// Option configures the API instance.
type Option func(*API)

// WithRegistry sets the Prometheus registry metrics are registered on and
// served from. If not set, a fresh registry is used.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *API) {
		a.registry = reg
	}
}

// New creates a new API instance.
func New(users *services.UserService, accounts *services.AccountService, gate *auth.Gate, l logging.Logger, opts ...Option) *API {
	a := &API{
		users:    users,
		accounts: accounts,
		gate:     gate,
		logger:   l.With("module", "http_api"),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = prometheus.NewRegistry()
	}
	a.metrics = NewMetrics(a.registry)
	return a
}

// Metrics returns the collectors the API records into.
func (a *API) Metrics() *Metrics {
	return a.metrics
}

// Router returns a chi.Router with all routes mounted behind the gate.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(a.accessLog)
	r.Use(a.Authenticate)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(openapiSpec)
	})

	r.Handle("/docs*", openapimw.SwaggerUI(openapimw.SwaggerUIOpts{
		SpecURL: "/openapi.yaml",
		Path:    "docs",
		Title:   "Bank accounts API",
	}, http.NotFoundHandler()))

	r.Post("/api/register", a.Register)
	r.Post("/api/login", a.Login)

	r.Route("/api/accounts", func(r chi.Router) {
		r.Post("/", a.CreateAccount)
		r.Get("/", a.ListAccounts)
		r.Get("/{number}", a.GetAccount)
		r.Put("/{number}", a.UpdateAccount)
		r.Delete("/{number}", a.DeleteAccount)
	})

	return r
}
