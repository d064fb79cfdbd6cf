package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLog_BountyClaim(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(AuditLog(log))
	r.POST("/api/v1/bounties/:id/claim", func(c *gin.Context) {
		c.Set(CtxAgentID, "bob")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bounties/b-1/claim", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "claim_bounty", entry["audit_action"])
	assert.Equal(t, "bounty", entry["resource"])
	assert.Equal(t, "bob", entry["agent_id"])
	assert.Equal(t, "b-1", entry["resource_id"])
}

func TestAuditLog_SkipsGET(t *testing.T) {
	var buf bytes.Buffer

	r := gin.New()
	r.Use(AuditLog(zerolog.New(&buf)))
	r.GET("/api/v1/me/balance", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"balance": "100"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/me/balance", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, buf.Len())
}

func TestAuditLog_SkipsFailedRequests(t *testing.T) {
	var buf bytes.Buffer

	r := gin.New()
	r.Use(AuditLog(zerolog.New(&buf)))
	r.POST("/api/v1/me/tips", func(c *gin.Context) {
		c.JSON(http.StatusPaymentRequired, gin.H{"error_code": "PAY_001"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/me/tips", nil))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Zero(t, buf.Len())
}

func TestMapRouteToAction(t *testing.T) {
	tests := []struct {
		route    string
		method   string
		action   string
		resource string
	}{
		{"/api/v1/agents/register", "POST", "register", "agent"},
		{"/api/v1/me/rewards/claim", "POST", "claim_rewards", "account"},
		{"/api/v1/me/rewards/daily", "POST", "claim_daily", "account"},
		{"/api/v1/me/stake", "POST", "stake", "account"},
		{"/api/v1/me/unstake", "POST", "unstake", "account"},
		{"/api/v1/me/tips", "POST", "tip", "transaction"},
		{"/api/v1/bounties", "POST", "create_bounty", "bounty"},
		{"/api/v1/bounties/:id/cancel", "POST", "cancel_bounty", "bounty"},
		{"/api/v1/events", "POST", "ingest_event", "event"},
		{"/api/v1/bounties", "GET", "", ""},
		{"/unknown", "POST", "", ""},
	}

	for _, tc := range tests {
		action, resource := mapRouteToAction(tc.route, tc.method)
		assert.Equal(t, tc.action, action, "route=%s method=%s", tc.route, tc.method)
		assert.Equal(t, tc.resource, resource, "route=%s method=%s", tc.route, tc.method)
	}
}
