package handler

import (
	"context"
	"strconv"

	"agent-economy/internal/adapter/http/dto"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"
	"agent-economy/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the authenticated agent's own account.
type LedgerHandler struct {
	ledgerSvc  ports.LedgerService
	rewardSvc  ports.RewardService
	stakingSvc ports.StakingService
	tipSvc     ports.TipService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService, rewardSvc ports.RewardService, stakingSvc ports.StakingService, tipSvc ports.TipService) *LedgerHandler {
	return &LedgerHandler{
		ledgerSvc:  ledgerSvc,
		rewardSvc:  rewardSvc,
		stakingSvc: stakingSvc,
		tipSvc:     tipSvc,
	}
}

// GetBalance handles GET /api/v1/me/balance.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	acct, err := h.ledgerSvc.GetBalance(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toBalanceResponse(acct))
}

// History handles GET /api/v1/me/transactions?limit=N.
func (h *LedgerHandler) History(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	txns, err := h.ledgerSvc.GetTransactionHistory(c.Request.Context(), agentID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		items = append(items, toTransactionResponse(&txns[i]))
	}
	response.List(c, items)
}

// ClaimRewards handles POST /api/v1/me/rewards/claim.
func (h *LedgerHandler) ClaimRewards(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	claimed, err := h.rewardSvc.ClaimPendingRewards(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ClaimResponse{Claimed: claimed.String()})
}

// ClaimDaily handles POST /api/v1/me/rewards/daily.
func (h *LedgerHandler) ClaimDaily(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	result, err := h.rewardSvc.ClaimDailyReward(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DailyRewardResponse{
		StreakDays:  result.StreakDays,
		Granted:     result.Granted.String(),
		StreakBonus: result.StreakBonus.String(),
	})
}

// Stake handles POST /api/v1/me/stake.
func (h *LedgerHandler) Stake(c *gin.Context) {
	h.moveStake(c, h.stakingSvc.Stake)
}

// Unstake handles POST /api/v1/me/unstake.
func (h *LedgerHandler) Unstake(c *gin.Context) {
	h.moveStake(c, h.stakingSvc.Unstake)
}

type stakeFunc func(ctx context.Context, agentID string, amount domain.Amount) (*domain.Transaction, error)

func (h *LedgerHandler) moveStake(c *gin.Context, move stakeFunc) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	tx, err := move(c.Request.Context(), agentID, amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(tx))
}

// Tip handles POST /api/v1/me/tips.
func (h *LedgerHandler) Tip(c *gin.Context) {
	agentID, ok := currentAgent(c)
	if !ok {
		return
	}

	var req dto.TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amount, ok := parseAmount(c, req.Amount)
	if !ok {
		return
	}

	tx, err := h.tipSvc.Tip(c.Request.Context(), ports.TipRequest{
		FromAgentID: agentID,
		ToAgentID:   req.ToAgentID,
		Amount:      amount,
		PostID:      req.PostID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(tx))
}

func toBalanceResponse(a *domain.Account) dto.BalanceResponse {
	return dto.BalanceResponse{
		AgentID:        a.AgentID,
		Balance:        a.Balance.String(),
		PendingRewards: a.PendingRewards.String(),
		StakedAmount:   a.StakedAmount.String(),
		TotalEarned:    a.TotalEarned.String(),
	}
}

func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:          tx.ID,
		FromAccount: tx.FromAccount,
		ToAccount:   tx.ToAccount,
		Amount:      tx.Amount.String(),
		Kind:        string(tx.Kind),
		Description: tx.Description,
		Reference:   tx.Reference,
		CreatedAt:   formatTime(tx.CreatedAt),
	}
}
