package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the compositor.
type Metrics struct {
	registry                 *prometheus.Registry
	requestsTotal            prometheus.Counter
	artifactsRegisteredTotal prometheus.Counter
	sessionsClosedTotal      prometheus.Counter
	sessionsDeletedTotal     prometheus.Counter
	compositionsTotal        prometheus.Counter
	groupsTotal              *prometheus.CounterVec
	openSessions             prometheus.Gauge
	errorsTotal              prometheus.Counter
}

// New creates and registers Prometheus metrics for the compositor.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compositor_requests_total",
		Help: "Total number of HTTP requests received",
	})
	artifactsRegisteredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compositor_artifacts_registered_total",
		Help: "Total number of artifacts successfully registered",
	})
	sessionsClosedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compositor_sessions_closed_total",
		Help: "Total number of sessions closed",
	})
	sessionsDeletedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compositor_sessions_deleted_total",
		Help: "Total number of sessions evicted",
	})
	compositionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compositor_compositions_total",
		Help: "Total number of filter-graph plans built",
	})
	groupsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "compositor_groups_total",
		Help: "Total number of composited groups by layout",
	}, []string{"layout"})
	openSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "compositor_open_sessions",
		Help: "Number of sessions that are not closed",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compositor_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})

	registry.MustRegister(
		requestsTotal,
		artifactsRegisteredTotal,
		sessionsClosedTotal,
		sessionsDeletedTotal,
		compositionsTotal,
		groupsTotal,
		openSessions,
		errorsTotal,
	)

	return &Metrics{
		registry:                 registry,
		requestsTotal:            requestsTotal,
		artifactsRegisteredTotal: artifactsRegisteredTotal,
		sessionsClosedTotal:      sessionsClosedTotal,
		sessionsDeletedTotal:     sessionsDeletedTotal,
		compositionsTotal:        compositionsTotal,
		groupsTotal:              groupsTotal,
		openSessions:             openSessions,
		errorsTotal:              errorsTotal,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncArtifactsRegistered increments the artifacts registered counter.
func (m *Metrics) IncArtifactsRegistered() {
	m.artifactsRegisteredTotal.Inc()
}

// IncSessionsClosed increments the sessions closed counter.
func (m *Metrics) IncSessionsClosed() {
	m.sessionsClosedTotal.Inc()
}

// IncSessionsDeleted increments the sessions deleted counter.
func (m *Metrics) IncSessionsDeleted() {
	m.sessionsDeletedTotal.Inc()
}

// ObserveComposition counts one built plan and its groups per layout name.
func (m *Metrics) ObserveComposition(layouts []string) {
	m.compositionsTotal.Inc()
	for _, l := range layouts {
		m.groupsTotal.WithLabelValues(l).Inc()
	}
}

// SetOpenSessions sets the open sessions gauge.
func (m *Metrics) SetOpenSessions(n int) {
	m.openSessions.Set(float64(n))
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values (e.g. open sessions).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
