package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	s *state
}

func (r *AccountRepo) GetOrCreate(ctx context.Context, agentID string) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[agentID]
	if !ok {
		a = domain.NewAccount(agentID, r.s.now())
		r.s.accounts[agentID] = a
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepo) GetByAgentID(ctx context.Context, agentID string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[agentID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

// LockForUpdate locks the accounts in agent-id order and returns snapshots.
func (r *AccountRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, agentIDs ...string) (map[string]*domain.Account, error) {
	keys := make([]string, len(agentIDs))
	for i, id := range agentIDs {
		keys[i] = accountKey(id)
	}
	if err := lockRows(ctx, tx, keys...); err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	locked := make(map[string]*domain.Account, len(agentIDs))
	for _, id := range agentIDs {
		a, ok := r.s.accounts[id]
		if !ok {
			return nil, fmt.Errorf("lock account %s: %w", id, domain.ErrAccountNotFound)
		}
		cp := *a
		locked[id] = &cp
	}
	return locked, nil
}

// mutate locks the account row, applies fn to a copy and installs it,
// recording the previous value for rollback.
func (r *AccountRepo) mutate(ctx context.Context, tx pgx.Tx, agentID string, fn func(a *domain.Account) error) error {
	if err := lockRows(ctx, tx, accountKey(agentID)); err != nil {
		return fmt.Errorf("lock account %s: %w", agentID, err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.accounts[agentID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	next := *prev
	if err := fn(&next); err != nil {
		return err
	}
	next.UpdatedAt = r.s.now()
	r.s.accounts[agentID] = &next
	undoer(tx)(func() { r.s.accounts[agentID] = prev })
	return nil
}

func (r *AccountRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, agentID string, field domain.AccountField, delta domain.Amount) error {
	if !field.Valid() {
		return fmt.Errorf("apply delta: unknown field %q", field)
	}
	return r.mutate(ctx, tx, agentID, func(a *domain.Account) error {
		target := &a.Balance
		if field == domain.FieldStaked {
			target = &a.StakedAmount
		}
		next, err := target.Add(delta)
		if err != nil {
			return err
		}
		if next < 0 {
			return domain.ErrInsufficientFunds
		}
		*target = next
		return nil
	})
}

func (r *AccountRepo) AddPendingReward(ctx context.Context, tx pgx.Tx, agentID string, amount domain.Amount) error {
	return r.mutate(ctx, tx, agentID, func(a *domain.Account) error {
		pending, err := a.PendingRewards.Add(amount)
		if err != nil {
			return err
		}
		earned, err := a.TotalEarned.Add(amount)
		if err != nil {
			return err
		}
		a.PendingRewards, a.TotalEarned = pending, earned
		return nil
	})
}

func (r *AccountRepo) ClaimPending(ctx context.Context, tx pgx.Tx, agentID string) (domain.Amount, error) {
	var claimed domain.Amount
	err := r.mutate(ctx, tx, agentID, func(a *domain.Account) error {
		balance, err := a.Balance.Add(a.PendingRewards)
		if err != nil {
			return err
		}
		claimed = a.PendingRewards
		a.Balance, a.PendingRewards = balance, 0
		return nil
	})
	return claimed, err
}

func (r *AccountRepo) AddEarned(ctx context.Context, tx pgx.Tx, agentID string, amount domain.Amount) error {
	return r.mutate(ctx, tx, agentID, func(a *domain.Account) error {
		earned, err := a.TotalEarned.Add(amount)
		if err != nil {
			return err
		}
		a.TotalEarned = earned
		return nil
	})
}

func (r *AccountRepo) TouchStake(ctx context.Context, tx pgx.Tx, agentID string, at time.Time) error {
	return r.mutate(ctx, tx, agentID, func(a *domain.Account) error {
		a.LastStakeAt = &at
		return nil
	})
}

func (r *AccountRepo) ListStakers(ctx context.Context) ([]domain.Account, error) {
	return r.filter(func(a *domain.Account) bool { return a.StakedAmount > 0 }), nil
}

func (r *AccountRepo) TopEarners(ctx context.Context, limit int) ([]domain.Account, error) {
	all := r.filter(func(*domain.Account) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].TotalEarned != all[j].TotalEarned {
			return all[i].TotalEarned > all[j].TotalEarned
		}
		return all[i].AgentID < all[j].AgentID
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ListAll snapshots every account. It is not part of the repository port.
func (r *AccountRepo) ListAll(ctx context.Context) ([]domain.Account, error) {
	return r.filter(func(*domain.Account) bool { return true }), nil
}

// filter returns matching copies ordered by agent id.
func (r *AccountRepo) filter(keep func(a *domain.Account) bool) []domain.Account {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Account
	for _, a := range r.s.accounts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out
}
