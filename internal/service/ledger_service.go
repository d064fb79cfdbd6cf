package service

import (
	"context"
	"fmt"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"
)

const (
	defaultHistoryLimit     = 50
	maxHistoryLimit         = 200
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	accounts   ports.AccountRepository
	txLog      ports.TransactionRepository
	compliance ports.ComplianceRepository
	clock      ports.Clock
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	accounts ports.AccountRepository,
	txLog ports.TransactionRepository,
	compliance ports.ComplianceRepository,
	clock ports.Clock,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		accounts:   accounts,
		txLog:      txLog,
		compliance: compliance,
		clock:      clock,
	}
}

// GetBalance returns the agent's account. Agents without ledger activity
// get a zeroed account, which is not persisted.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, agentID string) (*domain.Account, error) {
	acct, err := s.accounts.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get account: %w", err))
	}
	if acct == nil {
		return domain.NewAccount(agentID, s.clock.Now()), nil
	}
	return acct, nil
}

// GetTransactionHistory returns the agent's transactions, newest first.
func (s *LedgerServiceImpl) GetTransactionHistory(ctx context.Context, agentID string, limit int) ([]domain.Transaction, error) {
	txs, err := s.txLog.ListByAgent(ctx, agentID, clampLimit(limit, defaultHistoryLimit, maxHistoryLimit))
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return txs, nil
}

// GetEarningsLeaderboard ranks agents by lifetime earnings.
func (s *LedgerServiceImpl) GetEarningsLeaderboard(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error) {
	top, err := s.accounts.TopEarners(ctx, clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit))
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("top earners: %w", err))
	}
	entries := make([]ports.LeaderboardEntry, 0, len(top))
	for i, a := range top {
		entries = append(entries, ports.LeaderboardEntry{
			Rank:    i + 1,
			AgentID: a.AgentID,
			Earned:  a.TotalEarned,
		})
	}
	return entries, nil
}

// GetActivityLeaderboard ranks agents by lifetime posts and replies.
func (s *LedgerServiceImpl) GetActivityLeaderboard(ctx context.Context, limit int) ([]ports.LeaderboardEntry, error) {
	top, err := s.compliance.TopActive(ctx, clampLimit(limit, defaultLeaderboardLimit, maxLeaderboardLimit))
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("top active: %w", err))
	}
	entries := make([]ports.LeaderboardEntry, 0, len(top))
	for i, r := range top {
		entries = append(entries, ports.LeaderboardEntry{
			Rank:    i + 1,
			AgentID: r.AgentID,
			Posts:   r.TotalPosts,
			Replies: r.TotalReplies,
			Karma:   r.Karma,
		})
	}
	return entries, nil
}

func clampLimit(limit, def, ceiling int) int {
	switch {
	case limit <= 0:
		return def
	case limit > ceiling:
		return ceiling
	default:
		return limit
	}
}
