package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide instruments. A fresh registry per App keeps
// tests from colliding on the global default.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	Logins       *prometheus.CounterVec
}

// NewMetrics builds the instrument set. activeSessions is sampled on scrape.
func NewMetrics(activeSessions func() float64) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		Registry: reg,
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_http_requests_total",
			Help: "HTTP requests by method and status.",
		}, []string{"method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portfolio_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_admin_logins_total",
			Help: "Admin login attempts by result.",
		}, []string{"result"}),
	}

	if activeSessions != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "portfolio_admin_sessions_active",
			Help: "Live admin sessions in the registry.",
		}, activeSessions)
	}

	return m
}
