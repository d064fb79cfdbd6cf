package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditLog writes one structured audit entry per successful ledger write.
// Routes are matched on their template, so path parameters are recorded
// separately.
func AuditLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resource := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		event := log.Info().
			Str("audit_action", action).
			Str("resource", resource).
			Str("agent_id", c.GetString(CtxAgentID)).
			Str("request_id", c.GetString(CtxRequestID)).
			Str("client_ip", c.ClientIP()).
			Int("status", status)
		if id := c.Param("id"); id != "" {
			event = event.Str("resource_id", id)
		}
		if id := c.GetString(CtxEventID); id != "" {
			event = event.Str("event_id", id)
		}
		event.Msg("audit")
	}
}

func mapRouteToAction(route, method string) (string, string) {
	if method != http.MethodPost {
		return "", ""
	}
	switch route {
	case "/api/v1/agents/register":
		return "register", "agent"
	case "/api/v1/me/rewards/claim":
		return "claim_rewards", "account"
	case "/api/v1/me/rewards/daily":
		return "claim_daily", "account"
	case "/api/v1/me/stake":
		return "stake", "account"
	case "/api/v1/me/unstake":
		return "unstake", "account"
	case "/api/v1/me/tips":
		return "tip", "transaction"
	case "/api/v1/bounties":
		return "create_bounty", "bounty"
	case "/api/v1/bounties/:id/claim":
		return "claim_bounty", "bounty"
	case "/api/v1/bounties/:id/cancel":
		return "cancel_bounty", "bounty"
	case "/api/v1/events":
		return "ingest_event", "event"
	}
	return "", ""
}
