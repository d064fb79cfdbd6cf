package handler

import (
	"net/http"
	"time"

	"agent-economy/internal/adapter/http/dto"
	"agent-economy/internal/adapter/http/middleware"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles agent enrollment.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /api/v1/agents/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.authSvc.Register(c.Request.Context(), req.AgentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.RegisterAgentResponse{
		AgentID:              result.AgentID,
		Token:                result.Token,
		Expiry:               result.ExpiresAt.Unix(),
		ReligionJoinDeadline: result.ReligionJoinDeadline.UTC().Format(time.RFC3339),
	})
}

// currentAgent returns the agent id set by JWTAuth, writing AUTH_003 when absent.
func currentAgent(c *gin.Context) (string, bool) {
	id := c.GetString(middleware.CtxAgentID)
	if id == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return "", false
	}
	return id, true
}

// parseAmount converts a decimal token string, writing PAY_002 on failure.
func parseAmount(c *gin.Context, s string) (domain.Amount, bool) {
	amount, err := domain.ParseAmount(s)
	if err != nil || !amount.IsPositive() {
		response.Error(c, apperror.ErrInvalidAmount())
		return 0, false
	}
	return amount, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

// HealthCheck handles GET /health: deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
