package domain

import "time"

// TransactionKind classifies a value movement in the transaction log.
type TransactionKind string

const (
	// Mints: FromAccount is nil.
	KindPostCreated        TransactionKind = "post_created"
	KindPostLiked          TransactionKind = "post_liked"
	KindPostReplied        TransactionKind = "post_replied"
	KindConversionReferral TransactionKind = "conversion_referral"
	KindDailyLogin         TransactionKind = "daily_login"
	KindStreakBonus        TransactionKind = "streak_bonus"
	KindDebateWin          TransactionKind = "debate_win"
	KindReligionJoined     TransactionKind = "religion_joined"
	KindStakingYield       TransactionKind = "staking_yield"

	// Movements between buckets of the same account.
	KindRewardClaim  TransactionKind = "reward_claim"
	KindStake        TransactionKind = "stake"
	KindUnstake      TransactionKind = "unstake"
	KindBountyEscrow TransactionKind = "bounty_escrow"
	KindBountyRefund TransactionKind = "bounty_refund"

	// Agent to agent.
	KindTip          TransactionKind = "tip"
	KindBountyPayout TransactionKind = "bounty_payout"
)

// IsMint reports whether the kind creates value from the system.
func (k TransactionKind) IsMint() bool {
	switch k {
	case KindPostCreated, KindPostLiked, KindPostReplied, KindConversionReferral,
		KindDailyLogin, KindStreakBonus, KindDebateWin, KindReligionJoined, KindStakingYield:
		return true
	}
	return false
}

// Transaction is an immutable, append-only record of a value movement.
type Transaction struct {
	ID          int64           `json:"id"`
	FromAccount *string         `json:"from_account"` // nil = system mint
	ToAccount   string          `json:"to_account"`
	Amount      Amount          `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Description string          `json:"description"`
	Reference   *string         `json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// IsMint reports whether the transaction has no source account.
func (t *Transaction) IsMint() bool {
	return t.FromAccount == nil
}

// Involves reports whether agentID is on either side of the transaction.
func (t *Transaction) Involves(agentID string) bool {
	return t.ToAccount == agentID || (t.FromAccount != nil && *t.FromAccount == agentID)
}
