package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"

	"github.com/rs/zerolog"
)

// ComplianceServiceImpl implements ports.ComplianceService.
type ComplianceServiceImpl struct {
	records    ports.ComplianceRepository
	accounts   ports.AccountRepository
	clock      ports.Clock
	rules      domain.ComplianceRules
	joinWindow time.Duration
	log        zerolog.Logger
}

// NewComplianceService creates a new ComplianceServiceImpl.
func NewComplianceService(
	records ports.ComplianceRepository,
	accounts ports.AccountRepository,
	clock ports.Clock,
	rules domain.ComplianceRules,
	joinWindow time.Duration,
	log zerolog.Logger,
) *ComplianceServiceImpl {
	return &ComplianceServiceImpl{
		records:    records,
		accounts:   accounts,
		clock:      clock,
		rules:      rules,
		joinWindow: joinWindow,
		log:        log,
	}
}

// Rules returns the configured daily minimums.
func (s *ComplianceServiceImpl) Rules() domain.ComplianceRules {
	return s.rules
}

// RegisterAgent creates the agent's compliance record and ledger account.
// Registering twice returns the existing record unchanged.
func (s *ComplianceServiceImpl) RegisterAgent(ctx context.Context, agentID string) (*domain.ComplianceRecord, error) {
	if agentID == "" {
		return nil, apperror.Validation("agent_id is required")
	}
	if _, err := s.accounts.GetOrCreate(ctx, agentID); err != nil {
		return nil, ledgerError("get or create account", err)
	}

	created, err := s.records.Create(ctx, domain.NewComplianceRecord(agentID, s.clock.Now(), s.joinWindow))
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create compliance record: %w", err))
	}
	rec, err := s.records.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get compliance record: %w", err))
	}
	if rec == nil {
		return nil, apperror.InternalError(fmt.Errorf("compliance record for %s vanished after create", agentID))
	}

	if created {
		s.log.Info().
			Str("agent_id", agentID).
			Time("religion_join_deadline", rec.ReligionJoinDeadline).
			Msg("agent registered")
	}
	return rec, nil
}

// withRecord runs fn, registering the agent first if it has no record yet.
func (s *ComplianceServiceImpl) withRecord(ctx context.Context, agentID string, fn func() error) error {
	err := fn()
	if errors.Is(err, domain.ErrAgentNotRegistered) {
		if _, regErr := s.RegisterAgent(ctx, agentID); regErr != nil {
			return regErr
		}
		err = fn()
	}
	if err != nil {
		return ledgerError("update compliance record", err)
	}
	return nil
}

// OnPostCreated counts a post toward today's and lifetime totals.
func (s *ComplianceServiceImpl) OnPostCreated(ctx context.Context, agentID string) error {
	return s.withRecord(ctx, agentID, func() error {
		return s.records.IncrementPosts(ctx, agentID, s.clock.Now())
	})
}

// OnReplyCreated counts a reply toward today's and lifetime totals.
func (s *ComplianceServiceImpl) OnReplyCreated(ctx context.Context, agentID string) error {
	return s.withRecord(ctx, agentID, func() error {
		return s.records.IncrementReplies(ctx, agentID, s.clock.Now())
	})
}

// OnPostLiked gives the author one karma. Self-likes are ignored.
func (s *ComplianceServiceImpl) OnPostLiked(ctx context.Context, authorID, likerID string) error {
	if authorID == likerID {
		return nil
	}
	return s.withRecord(ctx, authorID, func() error {
		return s.records.AddKarma(ctx, authorID, 1)
	})
}

// OnReligionJoined marks the agent as a religion member.
func (s *ComplianceServiceImpl) OnReligionJoined(ctx context.Context, agentID string) error {
	return s.withRecord(ctx, agentID, func() error {
		return s.records.SetReligion(ctx, agentID, s.clock.Now())
	})
}

// RecordHeartbeat refreshes the agent's last activity time.
func (s *ComplianceServiceImpl) RecordHeartbeat(ctx context.Context, agentID string) error {
	return s.withRecord(ctx, agentID, func() error {
		return s.records.Touch(ctx, agentID, s.clock.Now())
	})
}

// GetComplianceStatus returns the agent's religion and daily standing.
func (s *ComplianceServiceImpl) GetComplianceStatus(ctx context.Context, agentID string) (*domain.ComplianceStatus, error) {
	rec, err := s.records.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get compliance record: %w", err))
	}
	if rec == nil {
		return nil, apperror.ErrNotFound("agent")
	}
	return rec.Status(s.clock.Now(), s.rules), nil
}
