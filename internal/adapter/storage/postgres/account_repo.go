package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const accountColumns = `agent_id, balance, pending_rewards, staked_amount, total_earned, last_stake_at, created_at, updated_at`

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(
		&a.AgentID, &a.Balance, &a.PendingRewards, &a.StakedAmount,
		&a.TotalEarned, &a.LastStakeAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetOrCreate inserts a zeroed account if none exists and returns the stored row.
func (r *AccountRepo) GetOrCreate(ctx context.Context, agentID string) (*domain.Account, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO accounts (agent_id) VALUES ($1) ON CONFLICT (agent_id) DO NOTHING`, agentID)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	a, err := r.GetByAgentID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("account %s vanished after insert: %w", agentID, domain.ErrAccountNotFound)
	}
	return a, nil
}

// GetByAgentID fetches an account without locking. Returns nil, nil when missing.
func (r *AccountRepo) GetByAgentID(ctx context.Context, agentID string) (*domain.Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE agent_id = $1`, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// LockForUpdate takes row locks one id at a time in ascending order, so two
// operations touching the same pair of accounts cannot deadlock.
// This MUST be called within a transaction.
func (r *AccountRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, agentIDs ...string) (map[string]*domain.Account, error) {
	ids := uniqueSorted(agentIDs)
	locked := make(map[string]*domain.Account, len(ids))
	for _, id := range ids {
		a, err := scanAccount(tx.QueryRow(ctx,
			`SELECT `+accountColumns+` FROM accounts WHERE agent_id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("lock account %s: %w", id, domain.ErrAccountNotFound)
			}
			return nil, fmt.Errorf("lock account %s: %w", id, err)
		}
		locked[id] = a
	}
	return locked, nil
}

// ApplyDelta adds delta to a bucket in one conditional statement. When no row
// changes it distinguishes a missing account from an insufficient bucket.
func (r *AccountRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, agentID string, field domain.AccountField, delta domain.Amount) error {
	if !field.Valid() {
		return fmt.Errorf("apply delta: unknown field %q", field)
	}
	col := string(field)
	query := fmt.Sprintf(`UPDATE accounts SET %[1]s = %[1]s + $2, updated_at = NOW()
		WHERE agent_id = $1 AND %[1]s + $2 >= 0`, col)

	tag, err := tx.Exec(ctx, query, agentID, int64(delta))
	if err != nil {
		return fmt.Errorf("apply %s delta: %w", col, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE agent_id = $1)`, agentID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check account exists: %w", err)
	}
	if !exists {
		return domain.ErrAccountNotFound
	}
	return domain.ErrInsufficientFunds
}

// AddPendingReward credits pending rewards and lifetime earnings.
func (r *AccountRepo) AddPendingReward(ctx context.Context, tx pgx.Tx, agentID string, amount domain.Amount) error {
	tag, err := tx.Exec(ctx, `UPDATE accounts
		SET pending_rewards = pending_rewards + $2, total_earned = total_earned + $2, updated_at = NOW()
		WHERE agent_id = $1`, agentID, int64(amount))
	if err != nil {
		return fmt.Errorf("add pending reward: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// ClaimPending moves pending rewards to balance and returns what was moved.
func (r *AccountRepo) ClaimPending(ctx context.Context, tx pgx.Tx, agentID string) (domain.Amount, error) {
	var claimed domain.Amount
	err := tx.QueryRow(ctx, `UPDATE accounts a
		SET balance = a.balance + prev.pending_rewards, pending_rewards = 0, updated_at = NOW()
		FROM (SELECT agent_id, pending_rewards FROM accounts WHERE agent_id = $1 FOR UPDATE) prev
		WHERE a.agent_id = prev.agent_id
		RETURNING prev.pending_rewards`, agentID).Scan(&claimed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAccountNotFound
		}
		return 0, fmt.Errorf("claim pending rewards: %w", err)
	}
	return claimed, nil
}

// AddEarned raises lifetime earnings without touching any bucket.
func (r *AccountRepo) AddEarned(ctx context.Context, tx pgx.Tx, agentID string, amount domain.Amount) error {
	tag, err := tx.Exec(ctx,
		`UPDATE accounts SET total_earned = total_earned + $2, updated_at = NOW() WHERE agent_id = $1`,
		agentID, int64(amount))
	if err != nil {
		return fmt.Errorf("add earned: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepo) TouchStake(ctx context.Context, tx pgx.Tx, agentID string, at time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE accounts SET last_stake_at = $2, updated_at = NOW() WHERE agent_id = $1`, agentID, at)
	if err != nil {
		return fmt.Errorf("touch stake: %w", err)
	}
	return nil
}

// ListStakers returns every account with a positive stake.
func (r *AccountRepo) ListStakers(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts WHERE staked_amount > 0 ORDER BY agent_id`)
}

// TopEarners ranks accounts by lifetime earnings.
func (r *AccountRepo) TopEarners(ctx context.Context, limit int) ([]domain.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts
		ORDER BY total_earned DESC, agent_id ASC LIMIT $1`, limit)
}

func (r *AccountRepo) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
