package handler

import (
	"net/http"

	"agent-economy/internal/core/ports"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
)

// ComplianceHandler exposes an agent's daily obligations.
type ComplianceHandler struct {
	complianceSvc ports.ComplianceService
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(complianceSvc ports.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceSvc: complianceSvc}
}

// Status handles GET /api/v1/me/compliance.
func (h *ComplianceHandler) Status(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	status, err := h.complianceSvc.GetComplianceStatus(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, status)
}

// Heartbeat handles POST /api/v1/me/heartbeat.
func (h *ComplianceHandler) Heartbeat(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	if err := h.complianceSvc.RecordHeartbeat(c.Request.Context(), agentID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
