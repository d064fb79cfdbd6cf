package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// EventDedupRepo implements ports.EventDeduper on the processed_events table.
// It stands in for the Redis deduper when Redis is disabled.
type EventDedupRepo struct {
	pool Pool
	now  func() time.Time
}

// NewEventDedupRepo creates a new EventDedupRepo.
func NewEventDedupRepo(pool Pool) *EventDedupRepo {
	return &EventDedupRepo{pool: pool, now: time.Now}
}

// FirstDelivery records eventID and reports whether it was unseen within ttl.
// An entry older than ttl is overwritten and counts as a first delivery.
func (r *EventDedupRepo) FirstDelivery(ctx context.Context, source string, eventID string, ttl time.Duration) (bool, error) {
	now := r.now().UTC()
	query := `INSERT INTO processed_events (source, event_id, seen_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (source, event_id) DO UPDATE SET seen_at = EXCLUDED.seen_at
		WHERE processed_events.seen_at < $4
		RETURNING seen_at`

	var seenAt time.Time
	err := r.pool.QueryRow(ctx, query, source, eventID, now, now.Add(-ttl)).Scan(&seenAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("record processed event: %w", err)
	}
	return true, nil
}

// Forget releases eventID so a failed delivery can be retried.
func (r *EventDedupRepo) Forget(ctx context.Context, source string, eventID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM processed_events WHERE source = $1 AND event_id = $2`, source, eventID)
	if err != nil {
		return fmt.Errorf("forget processed event: %w", err)
	}
	return nil
}

// PurgeBefore deletes entries last seen before cutoff.
func (r *EventDedupRepo) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM processed_events WHERE seen_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge processed events: %w", err)
	}
	return tag.RowsAffected(), nil
}
