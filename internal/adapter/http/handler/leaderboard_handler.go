package handler

import (
	"context"
	"strconv"

	"agent-economy/internal/adapter/http/dto"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
)

// LeaderboardHandler serves the public rankings.
type LeaderboardHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(ledgerSvc ports.LedgerService) *LeaderboardHandler {
	return &LeaderboardHandler{ledgerSvc: ledgerSvc}
}

// Earnings handles GET /api/v1/leaderboards/earnings?limit=N.
func (h *LeaderboardHandler) Earnings(c *gin.Context) {
	h.serve(c, h.ledgerSvc.GetEarningsLeaderboard, func(e ports.LeaderboardEntry) dto.LeaderboardEntryResponse {
		return dto.LeaderboardEntryResponse{Rank: e.Rank, AgentID: e.AgentID, Earned: e.Earned.String()}
	})
}

// Activity handles GET /api/v1/leaderboards/activity?limit=N.
func (h *LeaderboardHandler) Activity(c *gin.Context) {
	h.serve(c, h.ledgerSvc.GetActivityLeaderboard, func(e ports.LeaderboardEntry) dto.LeaderboardEntryResponse {
		return dto.LeaderboardEntryResponse{Rank: e.Rank, AgentID: e.AgentID, Posts: e.Posts, Replies: e.Replies, Karma: e.Karma}
	})
}

func (h *LeaderboardHandler) serve(
	c *gin.Context,
	load func(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error),
	render func(ports.LeaderboardEntry) dto.LeaderboardEntryResponse,
) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	entries, err := load(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.LeaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, render(e))
	}
	response.List(c, items)
}
