package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BountyPolicy bounds bounty creation.
type BountyPolicy struct {
	MinReward          domain.Amount
	MaxReward          domain.Amount
	DefaultExpiryHours int
	MaxExpiryHours     int
}

// DefaultBountyPolicy allows rewards of 1..10000 tokens for up to a week.
func DefaultBountyPolicy() BountyPolicy {
	return BountyPolicy{
		MinReward:          domain.Tokens(1),
		MaxReward:          domain.Tokens(10_000),
		DefaultExpiryHours: 24,
		MaxExpiryHours:     168,
	}
}

const maxBountyDescriptionLen = 2000

// BountyServiceImpl implements ports.BountyService.
type BountyServiceImpl struct {
	accounts   ports.AccountRepository
	txLog      ports.TransactionRepository
	bounties   ports.BountyRepository
	transactor ports.DBTransactor
	notifier   ports.Notifier
	clock      ports.Clock
	policy     BountyPolicy
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewBountyService creates a new BountyServiceImpl.
func NewBountyService(
	accounts ports.AccountRepository,
	txLog ports.TransactionRepository,
	bounties ports.BountyRepository,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	clock ports.Clock,
	policy BountyPolicy,
	m *metrics.Metrics,
	log zerolog.Logger,
) *BountyServiceImpl {
	return &BountyServiceImpl{
		accounts:   accounts,
		txLog:      txLog,
		bounties:   bounties,
		transactor: transactor,
		notifier:   notifier,
		clock:      clock,
		policy:     policy,
		metrics:    m,
		log:        log,
	}
}

// CreateBounty escrows the reward from the creator's balance and persists
// the bounty as active. Insufficient balance leaves nothing behind.
func (s *BountyServiceImpl) CreateBounty(ctx context.Context, req ports.CreateBountyRequest) (*domain.Bounty, error) {
	b, err := s.create(ctx, req)
	if err != nil {
		return nil, reject(s.metrics, "create_bounty", err)
	}
	return b, nil
}

func (s *BountyServiceImpl) create(ctx context.Context, req ports.CreateBountyRequest) (*domain.Bounty, error) {
	if !req.Type.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("unknown bounty type %q", req.Type))
	}
	description := strings.TrimSpace(req.Description)
	if description == "" || len(description) > maxBountyDescriptionLen {
		return nil, apperror.Validation(fmt.Sprintf("description must be 1-%d characters", maxBountyDescriptionLen))
	}
	if req.Reward < s.policy.MinReward || req.Reward > s.policy.MaxReward {
		return nil, apperror.Validation(fmt.Sprintf("reward must be between %s and %s", s.policy.MinReward, s.policy.MaxReward))
	}
	hours := req.ExpiresInHours
	if hours == 0 {
		hours = s.policy.DefaultExpiryHours
	}
	if hours < 1 || hours > s.policy.MaxExpiryHours {
		return nil, apperror.Validation(fmt.Sprintf("expires_in_hours must be between 1 and %d", s.policy.MaxExpiryHours))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.accounts.ApplyDelta(ctx, dbTx, req.CreatorID, domain.FieldBalance, -req.Reward); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, apperror.ErrInsufficientFunds()
		}
		return nil, ledgerError("escrow reward", err)
	}

	now := s.clock.Now()
	b := &domain.Bounty{
		ID:          uuid.New(),
		CreatorID:   req.CreatorID,
		Type:        req.Type,
		Description: description,
		Reward:      req.Reward,
		ExpiresAt:   now.Add(time.Duration(hours) * time.Hour),
		Status:      domain.BountyStatusActive,
		CreatedAt:   now,
	}
	if err := s.bounties.Create(ctx, dbTx, b); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create bounty: %w", err))
	}

	ref := b.ID.String()
	creator := req.CreatorID
	if err := s.txLog.Append(ctx, dbTx, &domain.Transaction{
		FromAccount: &creator,
		ToAccount:   creator,
		Amount:      b.Reward,
		Kind:        domain.KindBountyEscrow,
		Description: "Bounty reward escrowed",
		Reference:   &ref,
		CreatedAt:   now,
	}); err != nil {
		return nil, ledgerError("append transaction", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(domain.KindBountyEscrow), int64(b.Reward))
	s.log.Info().
		Str("bounty_id", ref).
		Str("creator_id", b.CreatorID).
		Str("type", string(b.Type)).
		Int64("reward", int64(b.Reward)).
		Time("expires_at", b.ExpiresAt).
		Msg("bounty created")

	return b, nil
}

// ClaimBounty pays the escrowed reward to claimerID. Only the first claim of
// an active bounty succeeds. A claim after the deadline expires the bounty,
// refunds the creator and fails with BNT_002.
func (s *BountyServiceImpl) ClaimBounty(ctx context.Context, bountyID uuid.UUID, claimerID string) (*domain.Bounty, error) {
	b, err := s.claim(ctx, bountyID, claimerID)
	if err != nil {
		return nil, reject(s.metrics, "claim_bounty", err)
	}
	return b, nil
}

func (s *BountyServiceImpl) claim(ctx context.Context, bountyID uuid.UUID, claimerID string) (*domain.Bounty, error) {
	b, err := s.bounties.GetByID(ctx, bountyID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get bounty: %w", err))
	}
	if b == nil {
		return nil, apperror.ErrNotFound("bounty")
	}
	if b.CreatorID == claimerID {
		return nil, apperror.ErrSelfOperationNotAllowed()
	}
	if b.IsTerminal() {
		return nil, apperror.ErrAlreadyClaimed()
	}

	now := s.clock.Now()
	if b.IsExpiredAt(now) {
		if _, err := s.settleRefund(ctx, b, domain.BountyStatusExpired, now); err != nil {
			return nil, err
		}
		return nil, apperror.ErrBountyExpired()
	}

	if _, err := s.accounts.GetOrCreate(ctx, claimerID); err != nil {
		return nil, ledgerError("get or create claimer", err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	claimant := claimerID
	won, err := s.bounties.Transition(ctx, dbTx, b.ID, domain.BountyStatusActive, domain.BountyStatusClaimed, &claimant, now)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("claim bounty: %w", err))
	}
	if !won {
		return nil, apperror.ErrAlreadyClaimed()
	}

	if err := s.accounts.ApplyDelta(ctx, dbTx, claimerID, domain.FieldBalance, b.Reward); err != nil {
		return nil, ledgerError("credit claimer", err)
	}
	if err := s.accounts.AddEarned(ctx, dbTx, claimerID, b.Reward); err != nil {
		return nil, ledgerError("add earned", err)
	}

	ref := b.ID.String()
	creator := b.CreatorID
	if err := s.txLog.Append(ctx, dbTx, &domain.Transaction{
		FromAccount: &creator,
		ToAccount:   claimerID,
		Amount:      b.Reward,
		Kind:        domain.KindBountyPayout,
		Description: fmt.Sprintf("Bounty claimed: %s", b.Type),
		Reference:   &ref,
		CreatedAt:   now,
	}); err != nil {
		return nil, ledgerError("append transaction", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	b.Status = domain.BountyStatusClaimed
	b.ClaimantID = &claimant
	b.SettledAt = &now

	s.metrics.ObserveTransaction(string(domain.KindBountyPayout), int64(b.Reward))
	s.log.Info().
		Str("bounty_id", ref).
		Str("creator_id", b.CreatorID).
		Str("claimant_id", claimerID).
		Int64("reward", int64(b.Reward)).
		Msg("bounty claimed")

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, domain.Notification{
			AgentID:   b.CreatorID,
			Kind:      domain.NotifyBountyClaimed,
			Message:   fmt.Sprintf("%s claimed your %s bounty", claimerID, b.Type),
			CreatedAt: now,
		}); err != nil {
			s.log.Warn().Err(err).Str("bounty_id", ref).Msg("bounty claim notification failed")
		}
	}

	return b, nil
}

// CancelBounty lets the creator withdraw an active bounty and refunds it.
func (s *BountyServiceImpl) CancelBounty(ctx context.Context, bountyID uuid.UUID, requesterID string) (*domain.Bounty, error) {
	b, err := s.bounties.GetByID(ctx, bountyID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get bounty: %w", err))
	}
	if b == nil {
		return nil, reject(s.metrics, "cancel_bounty", apperror.ErrNotFound("bounty"))
	}
	if b.CreatorID != requesterID {
		return nil, reject(s.metrics, "cancel_bounty", apperror.ErrForbidden())
	}
	if b.IsTerminal() {
		return nil, reject(s.metrics, "cancel_bounty", apperror.ErrBountyNotActive())
	}

	now := s.clock.Now()
	won, err := s.settleRefund(ctx, b, domain.BountyStatusCancelled, now)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, reject(s.metrics, "cancel_bounty", apperror.ErrBountyNotActive())
	}

	b.Status = domain.BountyStatusCancelled
	b.SettledAt = &now
	return b, nil
}

// settleRefund moves an active bounty to a refunding terminal status and
// returns the escrow to the creator. It reports false, without refunding,
// when the bounty had already left the active state.
func (s *BountyServiceImpl) settleRefund(ctx context.Context, b *domain.Bounty, to domain.BountyStatus, now time.Time) (bool, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	won, err := s.bounties.Transition(ctx, dbTx, b.ID, domain.BountyStatusActive, to, nil, now)
	if err != nil {
		return false, apperror.ErrDatabaseError(fmt.Errorf("settle bounty: %w", err))
	}
	if !won {
		return false, nil
	}

	if err := s.accounts.ApplyDelta(ctx, dbTx, b.CreatorID, domain.FieldBalance, b.Reward); err != nil {
		return false, ledgerError("refund creator", err)
	}

	ref := b.ID.String()
	creator := b.CreatorID
	if err := s.txLog.Append(ctx, dbTx, &domain.Transaction{
		FromAccount: &creator,
		ToAccount:   creator,
		Amount:      b.Reward,
		Kind:        domain.KindBountyRefund,
		Description: fmt.Sprintf("Bounty %s, reward refunded", to),
		Reference:   &ref,
		CreatedAt:   now,
	}); err != nil {
		return false, ledgerError("append transaction", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return false, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(domain.KindBountyRefund), int64(b.Reward))
	s.log.Info().
		Str("bounty_id", ref).
		Str("creator_id", creator).
		Str("status", string(to)).
		Int64("refund", int64(b.Reward)).
		Msg("bounty refunded")

	return true, nil
}

// GetBounty returns a bounty by id.
func (s *BountyServiceImpl) GetBounty(ctx context.Context, bountyID uuid.UUID) (*domain.Bounty, error) {
	b, err := s.bounties.GetByID(ctx, bountyID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get bounty: %w", err))
	}
	if b == nil {
		return nil, apperror.ErrNotFound("bounty")
	}
	return b, nil
}

// ListActiveBounties returns active bounties, newest first.
func (s *BountyServiceImpl) ListActiveBounties(ctx context.Context, limit int) ([]domain.Bounty, error) {
	list, err := s.bounties.ListActive(ctx, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list bounties: %w", err))
	}
	return list, nil
}

// ExpireOverdueBounties expires every active bounty past its deadline and
// refunds each creator once. Failures are logged per bounty.
func (s *BountyServiceImpl) ExpireOverdueBounties(ctx context.Context) (int, error) {
	now := s.clock.Now()
	overdue, err := s.bounties.ListExpiredActive(ctx, now)
	if err != nil {
		return 0, apperror.ErrDatabaseError(fmt.Errorf("list overdue bounties: %w", err))
	}

	expired := 0
	for i := range overdue {
		won, err := s.settleRefund(ctx, &overdue[i], domain.BountyStatusExpired, now)
		if err != nil {
			s.metrics.ObserveAgentFailure("bounty_expiry")
			s.log.Error().Err(err).Str("bounty_id", overdue[i].ID.String()).Msg("expire bounty")
			continue
		}
		if won {
			expired++
		}
	}
	return expired, nil
}
