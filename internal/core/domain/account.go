package domain

import (
	"errors"
	"time"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotFound   = errors.New("account not found")
)

// AccountField names a spendable bucket that ApplyDelta may mutate.
type AccountField string

const (
	FieldBalance AccountField = "balance"
	FieldStaked  AccountField = "staked_amount"
)

// Valid reports whether f is one of the mutable buckets.
func (f AccountField) Valid() bool {
	return f == FieldBalance || f == FieldStaked
}

// Account is an agent's ledger state. Balance and StakedAmount never go negative.
type Account struct {
	AgentID        string     `json:"agent_id"`
	Balance        Amount     `json:"balance"`
	PendingRewards Amount     `json:"pending_rewards"`
	StakedAmount   Amount     `json:"staked_amount"`
	TotalEarned    Amount     `json:"total_earned"`
	LastStakeAt    *time.Time `json:"last_stake_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Field returns the value of a mutable bucket.
func (a *Account) Field(f AccountField) Amount {
	if f == FieldStaked {
		return a.StakedAmount
	}
	return a.Balance
}

// NewAccount returns a zeroed account for agentID.
func NewAccount(agentID string, now time.Time) *Account {
	return &Account{
		AgentID:   agentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
