package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// SchedulerStateRepo implements ports.SchedulerStateRepository.
type SchedulerStateRepo struct {
	pool Pool
}

// NewSchedulerStateRepo creates a new SchedulerStateRepo.
func NewSchedulerStateRepo(pool Pool) *SchedulerStateRepo {
	return &SchedulerStateRepo{pool: pool}
}

// GetDate returns the stored date for key, or nil if never set.
func (r *SchedulerStateRepo) GetDate(ctx context.Context, key string) (*time.Time, error) {
	var d time.Time
	err := r.pool.QueryRow(ctx, `SELECT date_value FROM scheduler_state WHERE key = $1`, key).Scan(&d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get scheduler state %s: %w", key, err)
	}
	d = domain.UTCDate(d)
	return &d, nil
}

func (r *SchedulerStateRepo) SetDate(ctx context.Context, key string, date time.Time) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO scheduler_state (key, date_value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET date_value = EXCLUDED.date_value, updated_at = NOW()`,
		key, domain.UTCDate(date))
	if err != nil {
		return fmt.Errorf("set scheduler state %s: %w", key, err)
	}
	return nil
}

// ClaimDate advances key to date only if it is currently earlier. Exactly
// one caller per key and date observes true.
func (r *SchedulerStateRepo) ClaimDate(ctx context.Context, key string, date time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `INSERT INTO scheduler_state (key, date_value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET date_value = EXCLUDED.date_value, updated_at = NOW()
		WHERE scheduler_state.date_value < EXCLUDED.date_value`,
		key, domain.UTCDate(date))
	if err != nil {
		return false, fmt.Errorf("claim scheduler state %s: %w", key, err)
	}
	return tag.RowsAffected() == 1, nil
}
