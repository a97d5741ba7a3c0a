package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors of the HTTP surface.
type Metrics struct {
	authDecisions   *prometheus.CounterVec
	logins          *prometheus.CounterVec
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		authDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankaccounts_auth_decisions_total",
				Help: "Gate decisions by outcome (public, admitted, rejected) and rejection reason",
			},
			[]string{"outcome", "reason"},
		),
		logins: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankaccounts_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
		requests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankaccounts_http_requests_total",
				Help: "HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		),
		requestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankaccounts_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// ObserveDecision counts one gate decision.
func (m *Metrics) ObserveDecision(d auth.Decision) {
	switch {
	case d.Public:
		m.authDecisions.WithLabelValues("public", "").Inc()
	case d.Admitted():
		m.authDecisions.WithLabelValues("admitted", "").Inc()
	default:
		m.authDecisions.WithLabelValues("rejected", auth.RejectReason(d.Cause)).Inc()
	}
}

func (m *Metrics) ObserveLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

// ObserveRequest records one served request. Methods outside the standard
// set share the "OTHER" label so clients cannot mint new series.
func (m *Metrics) ObserveRequest(method, status string, elapsed time.Duration) {
	method = methodLabel(method)
	m.requests.WithLabelValues(method, status).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	default:
		return "OTHER"
	}
}
