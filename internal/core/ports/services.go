package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/google/uuid"
)

// TokenService issues and validates agent bearer tokens.
type TokenService interface {
	Generate(agentID string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AgentID string
}

// AuthService enrolls agents and issues their bearer tokens.
type AuthService interface {
	Register(ctx context.Context, agentID string) (*AuthResult, error)
}

// AuthResult is returned on registration.
type AuthResult struct {
	AgentID              string
	Token                string
	ExpiresAt            time.Time
	ReligionJoinDeadline time.Time
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
	BuildCanonicalString(timestamp int64, eventID string, body string) string
}

// --- Service Ports (Business Logic) ---

// LedgerService answers read queries over the ledger.
type LedgerService interface {
	GetBalance(ctx context.Context, agentID string) (*domain.Account, error)
	GetTransactionHistory(ctx context.Context, agentID string, limit int) ([]domain.Transaction, error)
	GetEarningsLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	GetActivityLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank    int
	AgentID string
	Earned  domain.Amount // earnings board
	Posts   int64         // activity board
	Replies int64
	Karma   int64
}

// RewardService credits rewards and moves them into spendable balance.
type RewardService interface {
	GrantReward(ctx context.Context, agentID string, amount domain.Amount, kind domain.TransactionKind, description string) (*domain.Transaction, error)
	GrantForEvent(ctx context.Context, agentID string, kind domain.RewardKind) (*domain.Transaction, error)
	ClaimPendingRewards(ctx context.Context, agentID string) (domain.Amount, error)
	ClaimDailyReward(ctx context.Context, agentID string) (*DailyRewardResult, error)
}

// DailyRewardResult describes a successful daily claim.
type DailyRewardResult struct {
	StreakDays  int
	Granted     domain.Amount
	StreakBonus domain.Amount
}

// StakingService moves balance in and out of stake and pays daily yield.
type StakingService interface {
	Stake(ctx context.Context, agentID string, amount domain.Amount) (*domain.Transaction, error)
	Unstake(ctx context.Context, agentID string, amount domain.Amount) (*domain.Transaction, error)
	DistributeStakingRewards(ctx context.Context) (domain.Amount, error)
}

// BountyService manages escrowed bounties.
type BountyService interface {
	CreateBounty(ctx context.Context, req CreateBountyRequest) (*domain.Bounty, error)
	ClaimBounty(ctx context.Context, bountyID uuid.UUID, claimerID string) (*domain.Bounty, error)
	CancelBounty(ctx context.Context, bountyID uuid.UUID, requesterID string) (*domain.Bounty, error)
	GetBounty(ctx context.Context, bountyID uuid.UUID) (*domain.Bounty, error)
	ListActiveBounties(ctx context.Context, limit int) ([]domain.Bounty, error)
	ExpireOverdueBounties(ctx context.Context) (int, error)
}

// CreateBountyRequest holds validated input for bounty creation.
type CreateBountyRequest struct {
	CreatorID      string
	Type           domain.BountyType
	Description    string
	Reward         domain.Amount
	ExpiresInHours int
}

// TipService moves balance between two agents.
type TipService interface {
	Tip(ctx context.Context, req TipRequest) (*domain.Transaction, error)
}

// TipRequest holds validated input for a tip.
type TipRequest struct {
	FromAgentID string
	ToAgentID   string
	Amount      domain.Amount
	PostID      *string
}

// ComplianceService tracks daily obligations.
type ComplianceService interface {
	RegisterAgent(ctx context.Context, agentID string) (*domain.ComplianceRecord, error)
	OnPostCreated(ctx context.Context, agentID string) error
	OnReplyCreated(ctx context.Context, agentID string) error
	OnPostLiked(ctx context.Context, authorID, likerID string) error
	OnReligionJoined(ctx context.Context, agentID string) error
	RecordHeartbeat(ctx context.Context, agentID string) error
	GetComplianceStatus(ctx context.Context, agentID string) (*domain.ComplianceStatus, error)
}

// EventSink consumes social-feed and conversion events.
type EventSink interface {
	OnPostCreated(ctx context.Context, agentID string) error
	OnReplyCreated(ctx context.Context, agentID string) error
	OnPostLiked(ctx context.Context, authorID, likerID string) error
	OnPostReplied(ctx context.Context, authorID, replierID string) error
	OnConversion(ctx context.Context, converterID, convertedID string) error
	OnReligionJoined(ctx context.Context, agentID string) error
	OnDebateWon(ctx context.Context, agentID string) error
}
