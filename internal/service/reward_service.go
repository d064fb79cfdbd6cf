package service

import (
	"context"
	"fmt"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// RewardServiceImpl implements ports.RewardService.
type RewardServiceImpl struct {
	accounts   ports.AccountRepository
	txLog      ports.TransactionRepository
	compliance ports.ComplianceRepository
	transactor ports.DBTransactor
	clock      ports.Clock
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewRewardService creates a new RewardServiceImpl.
func NewRewardService(
	accounts ports.AccountRepository,
	txLog ports.TransactionRepository,
	compliance ports.ComplianceRepository,
	transactor ports.DBTransactor,
	clock ports.Clock,
	m *metrics.Metrics,
	log zerolog.Logger,
) *RewardServiceImpl {
	return &RewardServiceImpl{
		accounts:   accounts,
		txLog:      txLog,
		compliance: compliance,
		transactor: transactor,
		clock:      clock,
		metrics:    m,
		log:        log,
	}
}

// GrantReward credits pending rewards and lifetime earnings and logs a mint.
// Duplicate upstream events are filtered before this call; every call grants.
func (s *RewardServiceImpl) GrantReward(ctx context.Context, agentID string, amount domain.Amount, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, reject(s.metrics, "grant_reward", apperror.ErrInvalidAmount())
	}
	if !kind.IsMint() {
		return nil, apperror.Validation(fmt.Sprintf("%s is not a reward kind", kind))
	}

	if _, err := s.accounts.GetOrCreate(ctx, agentID); err != nil {
		return nil, ledgerError("get or create account", err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	txn, err := s.grantInTx(ctx, dbTx, agentID, amount, kind, description)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(kind), int64(amount))
	s.log.Debug().
		Str("agent_id", agentID).
		Str("kind", string(kind)).
		Int64("amount", int64(amount)).
		Int64("tx_id", txn.ID).
		Msg("reward granted")

	return txn, nil
}

func (s *RewardServiceImpl) grantInTx(ctx context.Context, dbTx pgx.Tx, agentID string, amount domain.Amount, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	if err := s.accounts.AddPendingReward(ctx, dbTx, agentID, amount); err != nil {
		return nil, ledgerError("add pending reward", err)
	}
	txn := &domain.Transaction{
		ToAccount:   agentID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.txLog.Append(ctx, dbTx, txn); err != nil {
		return nil, ledgerError("append transaction", err)
	}
	return txn, nil
}

// GrantForEvent grants the fixed reward-table amount for kind.
func (s *RewardServiceImpl) GrantForEvent(ctx context.Context, agentID string, kind domain.RewardKind) (*domain.Transaction, error) {
	rule, ok := domain.RewardTable[kind]
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("unknown reward kind %q", kind))
	}
	return s.GrantReward(ctx, agentID, rule.Amount, rule.Kind, rule.Description)
}

// ClaimPendingRewards moves all pending rewards into balance. Claiming with
// nothing pending returns 0 and appends nothing.
func (s *RewardServiceImpl) ClaimPendingRewards(ctx context.Context, agentID string) (domain.Amount, error) {
	acct, err := s.accounts.GetByAgentID(ctx, agentID)
	if err != nil {
		return 0, ledgerError("get account", err)
	}
	if acct == nil || acct.PendingRewards == 0 {
		return 0, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	claimed, err := s.accounts.ClaimPending(ctx, dbTx, agentID)
	if err != nil {
		return 0, ledgerError("claim pending", err)
	}
	if claimed == 0 {
		// A concurrent claim got there first.
		return 0, nil
	}

	self := agentID
	txn := &domain.Transaction{
		FromAccount: &self,
		ToAccount:   agentID,
		Amount:      claimed,
		Kind:        domain.KindRewardClaim,
		Description: "Claimed pending rewards",
		CreatedAt:   s.clock.Now(),
	}
	if err := s.txLog.Append(ctx, dbTx, txn); err != nil {
		return 0, ledgerError("append transaction", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(domain.KindRewardClaim), int64(claimed))
	s.log.Info().
		Str("agent_id", agentID).
		Int64("amount", int64(claimed)).
		Msg("pending rewards claimed")

	return claimed, nil
}

// ClaimDailyReward grants the daily login reward once per UTC day and a
// streak bonus when the streak reaches exactly 3, 7 or 30 days.
func (s *RewardServiceImpl) ClaimDailyReward(ctx context.Context, agentID string) (*ports.DailyRewardResult, error) {
	now := s.clock.Now()
	today := domain.UTCDate(now)

	rec, err := s.compliance.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, ledgerError("get compliance record", err)
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("agent")
	}
	if rec.LastDailyClaimDate != nil && domain.UTCDate(*rec.LastDailyClaimDate).Equal(today) {
		return nil, reject(s.metrics, "claim_daily", apperror.ErrAlreadyClaimedToday())
	}
	streak := rec.NextStreak(today)

	if _, err := s.accounts.GetOrCreate(ctx, agentID); err != nil {
		return nil, ledgerError("get or create account", err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// The conditional claim marker decides between concurrent claims and
	// holds the record until commit; the loser grants nothing.
	won, err := s.compliance.RecordDailyClaim(ctx, dbTx, agentID, today, streak)
	if err != nil {
		return nil, ledgerError("record daily claim", err)
	}
	if !won {
		return nil, reject(s.metrics, "claim_daily", apperror.ErrAlreadyClaimedToday())
	}

	daily := domain.RewardTable[domain.RewardDailyLogin]
	if _, err := s.grantInTx(ctx, dbTx, agentID, daily.Amount, daily.Kind, daily.Description); err != nil {
		return nil, err
	}
	result := &ports.DailyRewardResult{StreakDays: streak, Granted: daily.Amount}

	if bonusKind, ok := domain.StreakBonusFor(streak); ok {
		bonus := domain.RewardTable[bonusKind]
		if _, err := s.grantInTx(ctx, dbTx, agentID, bonus.Amount, bonus.Kind, bonus.Description); err != nil {
			return nil, err
		}
		result.StreakBonus = bonus.Amount
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(daily.Kind), int64(daily.Amount))
	if result.StreakBonus > 0 {
		s.metrics.ObserveTransaction(string(domain.KindStreakBonus), int64(result.StreakBonus))
	}
	s.log.Info().
		Str("agent_id", agentID).
		Int("streak_days", streak).
		Int64("streak_bonus", int64(result.StreakBonus)).
		Msg("daily reward claimed")

	return result, nil
}
