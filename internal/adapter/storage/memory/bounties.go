package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BountyRepo implements ports.BountyRepository.
type BountyRepo struct {
	s *state
}

func bountyKey(id uuid.UUID) string { return "bounty:" + id.String() }

func (r *BountyRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.Bounty) error {
	if err := lockRows(ctx, tx, bountyKey(b.ID)); err != nil {
		return fmt.Errorf("lock bounty: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.bounties[b.ID]; exists {
		return fmt.Errorf("insert bounty: duplicate id %s", b.ID)
	}
	cp := *b
	r.s.bounties[b.ID] = &cp
	undoer(tx)(func() { delete(r.s.bounties, b.ID) })
	return nil
}

func (r *BountyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bounties[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BountyRepo) Transition(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.BountyStatus, claimantID *string, at time.Time) (bool, error) {
	if err := lockRows(ctx, tx, bountyKey(id)); err != nil {
		return false, fmt.Errorf("lock bounty: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.bounties[id]
	if !ok || prev.Status != from {
		return false, nil
	}
	next := *prev
	next.Status = to
	if claimantID != nil {
		c := *claimantID
		next.ClaimantID = &c
	}
	next.SettledAt = &at
	r.s.bounties[id] = &next
	undoer(tx)(func() { r.s.bounties[id] = prev })
	return true, nil
}

func (r *BountyRepo) ListActive(ctx context.Context, limit int) ([]domain.Bounty, error) {
	out := r.filter(func(b *domain.Bounty) bool { return b.Status == domain.BountyStatusActive })
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *BountyRepo) ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Bounty, error) {
	out := r.filter(func(b *domain.Bounty) bool {
		return b.Status == domain.BountyStatusActive && b.ExpiresAt.Before(now)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
	return out, nil
}

func (r *BountyRepo) filter(keep func(b *domain.Bounty) bool) []domain.Bounty {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Bounty
	for _, b := range r.s.bounties {
		if keep(b) {
			out = append(out, *b)
		}
	}
	return out
}
