package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestObserveTransaction(t *testing.T) {
	m := newTestMetrics()

	m.ObserveTransaction("tip", 2_000_000)
	m.ObserveTransaction("tip", 500_000)

	body := scrape(t, m)
	assert.Contains(t, body, `agent_economy_ledger_transactions_total{kind="tip"} 2`)
	assert.Contains(t, body, `agent_economy_ledger_volume_minor_units_total{kind="tip"} 2.5e+06`)
}

func TestObserveNotification_Outcome(t *testing.T) {
	m := newTestMetrics()

	m.ObserveNotification("inactivity_reminder", nil)
	m.ObserveNotification("inactivity_reminder", errors.New("webhook down"))

	body := scrape(t, m)
	assert.Contains(t, body, `agent_economy_notifications_total{kind="inactivity_reminder",outcome="failed"} 1`)
	assert.Contains(t, body, `agent_economy_notifications_total{kind="inactivity_reminder",outcome="sent"} 1`)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := newTestMetrics()
	m.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)
	m.ObserveRejection("tip", "PAY_001")
	m.StepTimer("daily_reset")()

	body := scrape(t, m)
	assert.Contains(t, body, "agent_economy_http_requests_total")
	assert.Contains(t, body, "agent_economy_ledger_rejections_total")
	assert.Contains(t, body, "agent_economy_scheduler_step_duration_seconds")
}

func TestNilMetrics_IsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveTransaction("tip", 1)
		m.ObserveHTTP(http.MethodGet, "/", 200, time.Millisecond)
		m.ObserveRejection("tip", "PAY_001")
		m.ObserveAgentFailure("inactivity")
		m.ObserveNotification("tip_received", nil)
		m.StepTimer("staking")()
	})
}
