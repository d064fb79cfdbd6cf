// Package metrics exposes Prometheus instrumentation for the ledger, the
// compliance scheduler and the HTTP surface. A nil *Metrics is valid and
// records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "agent_economy"

// Metrics holds every collector the service registers.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	transactions  *prometheus.CounterVec
	volume        *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	sweepDuration *prometheus.HistogramVec
	sweepFailures *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers collectors on reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: g,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Request latency",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"method", "route"}),
		transactions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_transactions_total",
			Help:      "Transactions appended to the log, by kind",
		}, []string{"kind"}),
		volume: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_volume_minor_units_total",
			Help:      "Value moved by transactions, in minor units",
		}, []string{"kind"}),
		rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_rejections_total",
			Help:      "Ledger operations rejected, by operation and error code",
		}, []string{"operation", "code"}),
		sweepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scheduler_step_duration_seconds",
			Help:      "Duration of each compliance sweep step",
			Buckets:   prometheus.DefBuckets,
		}, []string{"step"}),
		sweepFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_agent_failures_total",
			Help:      "Per-agent failures isolated during a sweep step",
		}, []string{"step"}),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications and public notices by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, http.StatusText(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveTransaction counts one appended transaction of amount minor units.
func (m *Metrics) ObserveTransaction(kind string, amount int64) {
	if m == nil {
		return
	}
	m.transactions.WithLabelValues(kind).Inc()
	m.volume.WithLabelValues(kind).Add(float64(amount))
}

func (m *Metrics) ObserveRejection(operation, code string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(operation, code).Inc()
}

// StepTimer starts timing a sweep step; call the returned func when it ends.
func (m *Metrics) StepTimer(step string) func() {
	if m == nil {
		return func() {}
	}
	timer := prometheus.NewTimer(m.sweepDuration.WithLabelValues(step))
	return func() { timer.ObserveDuration() }
}

func (m *Metrics) ObserveAgentFailure(step string) {
	if m == nil {
		return
	}
	m.sweepFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	outcome := "sent"
	if err != nil {
		outcome = "failed"
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}
