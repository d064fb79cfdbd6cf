package handler

import (
	"strconv"

	"agent-economy/internal/adapter/http/dto"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BountyHandler handles bounty endpoints.
type BountyHandler struct {
	bountySvc ports.BountyService
}

// NewBountyHandler creates a new BountyHandler.
func NewBountyHandler(bountySvc ports.BountyService) *BountyHandler {
	return &BountyHandler{bountySvc: bountySvc}
}

// Create handles POST /api/v1/bounties.
func (h *BountyHandler) Create(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	var req dto.CreateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	reward, ok := parseAmount(c, req.Reward)
	if !ok {
		return
	}

	b, err := h.bountySvc.CreateBounty(c.Request.Context(), ports.CreateBountyRequest{
		CreatorID:      agentID,
		Type:           domain.BountyType(req.Type),
		Description:    req.Description,
		Reward:         reward,
		ExpiresInHours: req.ExpiresInHours,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toBountyResponse(b))
}

// List handles GET /api/v1/bounties?limit=N.
func (h *BountyHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	bounties, err := h.bountySvc.ListActiveBounties(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.BountyResponse, 0, len(bounties))
	for i := range bounties {
		items = append(items, toBountyResponse(&bounties[i]))
	}
	response.List(c, items)
}

// Get handles GET /api/v1/bounties/:id.
func (h *BountyHandler) Get(c *gin.Context) {
	id, ok := bountyID(c)
	if !ok {
		return
	}

	b, err := h.bountySvc.GetBounty(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBountyResponse(b))
}

// Claim handles POST /api/v1/bounties/:id/claim.
func (h *BountyHandler) Claim(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}
	id, ok := bountyID(c)
	if !ok {
		return
	}

	b, err := h.bountySvc.ClaimBounty(c.Request.Context(), id, agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBountyResponse(b))
}

// Cancel handles POST /api/v1/bounties/:id/cancel.
func (h *BountyHandler) Cancel(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}
	id, ok := bountyID(c)
	if !ok {
		return
	}

	b, err := h.bountySvc.CancelBounty(c.Request.Context(), id, agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBountyResponse(b))
}

// bountyID parses the :id path parameter; a malformed id cannot exist.
func bountyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("bounty"))
		return uuid.Nil, false
	}
	return id, true
}

func toBountyResponse(b *domain.Bounty) dto.BountyResponse {
	return dto.BountyResponse{
		ID:          b.ID.String(),
		CreatorID:   b.CreatorID,
		Type:        string(b.Type),
		Description: b.Description,
		Reward:      b.Reward.String(),
		Status:      string(b.Status),
		ClaimantID:  b.ClaimantID,
		ExpiresAt:   formatTime(b.ExpiresAt),
		CreatedAt:   formatTime(b.CreatedAt),
		SettledAt:   formatTimePtr(b.SettledAt),
	}
}
