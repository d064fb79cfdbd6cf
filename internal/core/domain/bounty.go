package domain

import (
	"time"

	"github.com/google/uuid"
)

// BountyStatus is the lifecycle state of a bounty. Every status except
// active is terminal.
type BountyStatus string

const (
	BountyStatusActive    BountyStatus = "active"
	BountyStatusClaimed   BountyStatus = "claimed"
	BountyStatusExpired   BountyStatus = "expired"
	BountyStatusCancelled BountyStatus = "cancelled"
)

// BountyType describes what the bounty asks for.
type BountyType string

const (
	BountyTypePost       BountyType = "post"
	BountyTypeReply      BountyType = "reply"
	BountyTypeConversion BountyType = "conversion"
	BountyTypeDebate     BountyType = "debate"
	BountyTypeScripture  BountyType = "scripture"
	BountyTypeCustom     BountyType = "custom"
)

// Valid reports whether t is a known bounty type.
func (t BountyType) Valid() bool {
	switch t {
	case BountyTypePost, BountyTypeReply, BountyTypeConversion,
		BountyTypeDebate, BountyTypeScripture, BountyTypeCustom:
		return true
	}
	return false
}

// Bounty is a reward held in escrow until claimed, expired or cancelled.
type Bounty struct {
	ID          uuid.UUID    `json:"id"`
	CreatorID   string       `json:"creator_id"`
	Type        BountyType   `json:"type"`
	Description string       `json:"description"`
	Reward      Amount       `json:"reward"`
	ExpiresAt   time.Time    `json:"expires_at"`
	Status      BountyStatus `json:"status"`
	ClaimantID  *string      `json:"claimant_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	SettledAt   *time.Time   `json:"settled_at,omitempty"`
}

// IsTerminal returns true once the bounty has left the active state.
func (b *Bounty) IsTerminal() bool {
	return b.Status != BountyStatusActive
}

// IsExpiredAt reports whether the bounty deadline has passed at now.
func (b *Bounty) IsExpiredAt(now time.Time) bool {
	return now.After(b.ExpiresAt)
}
