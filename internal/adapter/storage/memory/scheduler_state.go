package memory

import (
	"context"
	"time"

	"agent-economy/internal/core/domain"
)

// SchedulerStateRepo implements ports.SchedulerStateRepository.
type SchedulerStateRepo struct {
	s *state
}

func (r *SchedulerStateRepo) GetDate(ctx context.Context, key string) (*time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.schedule[key]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *SchedulerStateRepo) SetDate(ctx context.Context, key string, date time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedule[key] = domain.UTCDate(date)
	return nil
}

func (r *SchedulerStateRepo) ClaimDate(ctx context.Context, key string, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	day := domain.UTCDate(date)
	if cur, ok := r.s.schedule[key]; ok && !cur.Before(day) {
		return false, nil
	}
	r.s.schedule[key] = day
	return true, nil
}
