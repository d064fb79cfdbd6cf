package dto

// Amounts cross the API as decimal token strings ("12.5") and are parsed
// into minor units with domain.ParseAmount.

// RegisterAgentRequest is the request body for agent enrollment.
type RegisterAgentRequest struct {
	AgentID string `json:"agent_id" binding:"required,agent_id"`
}

// RegisterAgentResponse is returned after enrollment.
type RegisterAgentResponse struct {
	AgentID              string `json:"agent_id"`
	Token                string `json:"token"`
	Expiry               int64  `json:"expiry"` // Unix timestamp
	ReligionJoinDeadline string `json:"religion_join_deadline"`
}

// AmountRequest is the request body for stake and unstake.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required,max=32"`
}

// TipRequest is the request body for a tip.
type TipRequest struct {
	ToAgentID string  `json:"to_agent_id" binding:"required,agent_id"`
	Amount    string  `json:"amount" binding:"required,max=32"`
	PostID    *string `json:"post_id,omitempty" binding:"omitempty,safe_id,max=100"`
}

// CreateBountyRequest is the request body for bounty creation.
type CreateBountyRequest struct {
	Type           string `json:"type" binding:"required,oneof=post reply conversion debate scripture custom"`
	Description    string `json:"description" binding:"required,max=2000"`
	Reward         string `json:"reward" binding:"required,max=32"`
	ExpiresInHours int    `json:"expires_in_hours" binding:"omitempty,gte=0"`
}

// EventRequest is one signed event from the social feed.
// AgentID is the subject (post author, converter, joiner); ActorID is the
// other party for likes, replies and conversions.
type EventRequest struct {
	Type    string `json:"type" binding:"required,oneof=post_created reply_created post_liked post_replied conversion religion_joined debate_won"`
	AgentID string `json:"agent_id" binding:"required,agent_id"`
	ActorID string `json:"actor_id,omitempty" binding:"omitempty,agent_id"`
}

// EventResponse reports whether an event was applied or suppressed.
type EventResponse struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	AgentID        string `json:"agent_id"`
	Balance        string `json:"balance"`
	PendingRewards string `json:"pending_rewards"`
	StakedAmount   string `json:"staked_amount"`
	TotalEarned    string `json:"total_earned"`
}

// TransactionResponse is one ledger entry.
type TransactionResponse struct {
	ID          int64   `json:"id"`
	FromAccount *string `json:"from_account"`
	ToAccount   string  `json:"to_account"`
	Amount      string  `json:"amount"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Reference   *string `json:"reference,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ClaimResponse is returned when pending rewards move to balance.
type ClaimResponse struct {
	Claimed string `json:"claimed"`
}

// DailyRewardResponse describes a daily login claim.
type DailyRewardResponse struct {
	StreakDays  int    `json:"streak_days"`
	Granted     string `json:"granted"`
	StreakBonus string `json:"streak_bonus"`
}

// BountyResponse is the public view of a bounty.
type BountyResponse struct {
	ID          string  `json:"id"`
	CreatorID   string  `json:"creator_id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Reward      string  `json:"reward"`
	Status      string  `json:"status"`
	ClaimantID  *string `json:"claimant_id,omitempty"`
	ExpiresAt   string  `json:"expires_at"`
	CreatedAt   string  `json:"created_at"`
	SettledAt   *string `json:"settled_at,omitempty"`
}

// LeaderboardEntryResponse is one ranked row.
type LeaderboardEntryResponse struct {
	Rank    int    `json:"rank"`
	AgentID string `json:"agent_id"`
	Earned  string `json:"earned,omitempty"`
	Posts   int64  `json:"posts,omitempty"`
	Replies int64  `json:"replies,omitempty"`
	Karma   int64  `json:"karma,omitempty"`
}
