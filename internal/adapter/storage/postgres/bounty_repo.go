package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bountyColumns = `id, creator_id, type, description, reward, expires_at, status, claimant_id, created_at, settled_at`

// BountyRepo implements ports.BountyRepository.
type BountyRepo struct {
	pool Pool
}

// NewBountyRepo creates a new BountyRepo.
func NewBountyRepo(pool Pool) *BountyRepo {
	return &BountyRepo{pool: pool}
}

func scanBounty(row rowScanner) (*domain.Bounty, error) {
	b := &domain.Bounty{}
	err := row.Scan(
		&b.ID, &b.CreatorID, &b.Type, &b.Description, &b.Reward,
		&b.ExpiresAt, &b.Status, &b.ClaimantID, &b.CreatedAt, &b.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Create inserts an active bounty within a database transaction.
func (r *BountyRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.Bounty) error {
	query := `INSERT INTO bounties (id, creator_id, type, description, reward, expires_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		b.ID, b.CreatorID, string(b.Type), b.Description, int64(b.Reward),
		b.ExpiresAt, string(b.Status), b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bounty: %w", err)
	}
	return nil
}

// GetByID fetches a bounty. Returns nil, nil when missing.
func (r *BountyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error) {
	b, err := scanBounty(r.pool.QueryRow(ctx, `SELECT `+bountyColumns+` FROM bounties WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bounty: %w", err)
	}
	return b, nil
}

// Transition moves the bounty between statuses only if it is still in from.
func (r *BountyRepo) Transition(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.BountyStatus, claimantID *string, at time.Time) (bool, error) {
	query := `UPDATE bounties SET status = $3, claimant_id = COALESCE($4, claimant_id), settled_at = $5
		WHERE id = $1 AND status = $2`

	tag, err := tx.Exec(ctx, query, id, string(from), string(to), claimantID, at)
	if err != nil {
		return false, fmt.Errorf("transition bounty: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListActive returns active bounties, newest first. limit <= 0 returns all.
func (r *BountyRepo) ListActive(ctx context.Context, limit int) ([]domain.Bounty, error) {
	query := `SELECT ` + bountyColumns + ` FROM bounties WHERE status = 'active'
		ORDER BY created_at DESC, id LIMIT $1`

	var lim any
	if limit > 0 {
		lim = limit
	}
	return r.list(ctx, query, lim)
}

// ListExpiredActive returns active bounties whose deadline passed before now.
func (r *BountyRepo) ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Bounty, error) {
	query := `SELECT ` + bountyColumns + ` FROM bounties
		WHERE status = 'active' AND expires_at < $1 ORDER BY expires_at`

	return r.list(ctx, query, now)
}

func (r *BountyRepo) list(ctx context.Context, query string, args ...any) ([]domain.Bounty, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bounties: %w", err)
	}
	defer rows.Close()

	var bounties []domain.Bounty
	for rows.Next() {
		b, err := scanBounty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bounty: %w", err)
		}
		bounties = append(bounties, *b)
	}
	return bounties, rows.Err()
}
