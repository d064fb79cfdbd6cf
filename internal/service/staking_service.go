package service

import (
	"context"
	"fmt"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/pkg/apperror"

	"github.com/rs/zerolog"
)

// StakingServiceImpl implements ports.StakingService.
type StakingServiceImpl struct {
	accounts      ports.AccountRepository
	txLog         ports.TransactionRepository
	rewards       ports.RewardService
	transactor    ports.DBTransactor
	clock         ports.Clock
	dailyYieldBps int64
	metrics       *metrics.Metrics
	log           zerolog.Logger
}

// NewStakingService creates a new StakingServiceImpl. dailyYieldBps is the
// daily yield in basis points of the staked amount.
func NewStakingService(
	accounts ports.AccountRepository,
	txLog ports.TransactionRepository,
	rewards ports.RewardService,
	transactor ports.DBTransactor,
	clock ports.Clock,
	dailyYieldBps int64,
	m *metrics.Metrics,
	log zerolog.Logger,
) *StakingServiceImpl {
	return &StakingServiceImpl{
		accounts:      accounts,
		txLog:         txLog,
		rewards:       rewards,
		transactor:    transactor,
		clock:         clock,
		dailyYieldBps: dailyYieldBps,
		metrics:       m,
		log:           log,
	}
}

// Stake moves amount from balance into stake.
func (s *StakingServiceImpl) Stake(ctx context.Context, agentID string, amount domain.Amount) (*domain.Transaction, error) {
	txn, err := s.move(ctx, agentID, amount, domain.FieldBalance, domain.FieldStaked, domain.KindStake, "Staked tokens")
	if err != nil {
		return nil, reject(s.metrics, "stake", err)
	}
	return txn, nil
}

// Unstake moves amount from stake back into balance.
func (s *StakingServiceImpl) Unstake(ctx context.Context, agentID string, amount domain.Amount) (*domain.Transaction, error) {
	txn, err := s.move(ctx, agentID, amount, domain.FieldStaked, domain.FieldBalance, domain.KindUnstake, "Unstaked tokens")
	if err != nil {
		return nil, reject(s.metrics, "unstake", err)
	}
	return txn, nil
}

// move debits one bucket and credits the other in a single transaction.
// The debit runs first so an insufficient source aborts before any write.
func (s *StakingServiceImpl) move(ctx context.Context, agentID string, amount domain.Amount, from, to domain.AccountField, kind domain.TransactionKind, description string) (*domain.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	acct, err := s.accounts.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, ledgerError("get account", err)
	}
	if acct == nil {
		return nil, apperror.ErrInsufficientFunds()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.accounts.ApplyDelta(ctx, dbTx, agentID, from, -amount); err != nil {
		return nil, ledgerError("debit "+string(from), err)
	}
	if err := s.accounts.ApplyDelta(ctx, dbTx, agentID, to, amount); err != nil {
		return nil, ledgerError("credit "+string(to), err)
	}

	now := s.clock.Now()
	if kind == domain.KindStake {
		if err := s.accounts.TouchStake(ctx, dbTx, agentID, now); err != nil {
			return nil, ledgerError("touch stake", err)
		}
	}

	self := agentID
	txn := &domain.Transaction{
		FromAccount: &self,
		ToAccount:   agentID,
		Amount:      amount,
		Kind:        kind,
		Description: description,
		CreatedAt:   now,
	}
	if err := s.txLog.Append(ctx, dbTx, txn); err != nil {
		return nil, ledgerError("append transaction", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(kind), int64(amount))
	s.log.Info().
		Str("agent_id", agentID).
		Str("kind", string(kind)).
		Int64("amount", int64(amount)).
		Int64("tx_id", txn.ID).
		Msg("stake updated")

	return txn, nil
}

// DistributeStakingRewards grants the daily yield to every staker and
// returns the total granted. It does not guard against repeated runs; the
// scheduler calls it at most once per UTC day.
func (s *StakingServiceImpl) DistributeStakingRewards(ctx context.Context) (domain.Amount, error) {
	stakers, err := s.accounts.ListStakers(ctx)
	if err != nil {
		return 0, ledgerError("list stakers", err)
	}

	var total domain.Amount
	for _, acct := range stakers {
		yield, err := acct.StakedAmount.MulBps(s.dailyYieldBps)
		if err != nil {
			s.log.Error().Err(err).Str("agent_id", acct.AgentID).Msg("compute staking yield")
			continue
		}
		if yield == 0 {
			continue
		}
		if _, err := s.rewards.GrantReward(ctx, acct.AgentID, yield, domain.KindStakingYield, "Daily staking yield"); err != nil {
			s.metrics.ObserveAgentFailure("staking_yield")
			s.log.Error().Err(err).Str("agent_id", acct.AgentID).Msg("grant staking yield")
			continue
		}
		next, err := total.Add(yield)
		if err != nil {
			return total, apperror.InternalError(fmt.Errorf("sum staking yield: %w", err))
		}
		total = next
	}

	s.log.Info().
		Int("stakers", len(stakers)).
		Int64("distributed", int64(total)).
		Msg("staking rewards distributed")

	return total, nil
}
