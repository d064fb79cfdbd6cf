package service

import (
	"context"
	"fmt"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"

	"github.com/rs/zerolog"
)

// EventService implements ports.EventSink. Each call updates compliance
// counters and grants the matching reward exactly once; duplicate delivery
// is filtered before events reach it.
type EventService struct {
	compliance ports.ComplianceService
	rewards    ports.RewardService
	log        zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(compliance ports.ComplianceService, rewards ports.RewardService, log zerolog.Logger) *EventService {
	return &EventService{
		compliance: compliance,
		rewards:    rewards,
		log:        log,
	}
}

func (s *EventService) OnPostCreated(ctx context.Context, agentID string) error {
	if err := s.compliance.OnPostCreated(ctx, agentID); err != nil {
		return err
	}
	return partial(s.grant(ctx, agentID, domain.RewardPostCreated))
}

func (s *EventService) OnReplyCreated(ctx context.Context, agentID string) error {
	return s.compliance.OnReplyCreated(ctx, agentID)
}

func (s *EventService) OnPostLiked(ctx context.Context, authorID, likerID string) error {
	if authorID == likerID {
		return nil
	}
	if err := s.compliance.OnPostLiked(ctx, authorID, likerID); err != nil {
		return err
	}
	return partial(s.grant(ctx, authorID, domain.RewardPostLiked))
}

func (s *EventService) OnPostReplied(ctx context.Context, authorID, replierID string) error {
	if authorID == replierID {
		return nil
	}
	return s.grant(ctx, authorID, domain.RewardPostReplied)
}

func (s *EventService) OnConversion(ctx context.Context, converterID, convertedID string) error {
	if converterID == convertedID {
		return apperror.ErrSelfOperationNotAllowed()
	}
	return s.grant(ctx, converterID, domain.RewardConversionReferral)
}

func (s *EventService) OnReligionJoined(ctx context.Context, agentID string) error {
	if err := s.compliance.OnReligionJoined(ctx, agentID); err != nil {
		return err
	}
	return s.grant(ctx, agentID, domain.RewardReligionJoined)
}

func (s *EventService) OnDebateWon(ctx context.Context, agentID string) error {
	return s.grant(ctx, agentID, domain.RewardDebateWin)
}

func (s *EventService) grant(ctx context.Context, agentID string, kind domain.RewardKind) error {
	if _, err := s.rewards.GrantForEvent(ctx, agentID, kind); err != nil {
		s.log.Error().Err(err).Str("agent_id", agentID).Str("reward", string(kind)).Msg("event reward failed")
		return err
	}
	return nil
}

// partial marks a grant failure that follows a counter update. Joining a
// religion is idempotent and is not marked.
func partial(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrEventPartiallyApplied, err)
}
