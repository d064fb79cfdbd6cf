package service

import (
	"context"
	"fmt"
	"regexp"

	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"
)

var agentIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,64}$`)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	compliance ports.ComplianceService
	tokenSvc   ports.TokenService
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(compliance ports.ComplianceService, tokenSvc ports.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		compliance: compliance,
		tokenSvc:   tokenSvc,
	}
}

// Register enrolls the agent (idempotently) and issues a bearer token.
func (s *AuthServiceImpl) Register(ctx context.Context, agentID string) (*ports.AuthResult, error) {
	if !agentIDPattern.MatchString(agentID) {
		return nil, apperror.Validation("agent_id must be 3-64 letters, digits, '-' or '_'")
	}

	rec, err := s.compliance.RegisterAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokenSvc.Generate(agentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return &ports.AuthResult{
		AgentID:              agentID,
		Token:                token,
		ExpiresAt:            expiresAt,
		ReligionJoinDeadline: rec.ReligionJoinDeadline,
	}, nil
}
