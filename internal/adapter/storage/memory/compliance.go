package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// ComplianceRepo implements ports.ComplianceRepository.
type ComplianceRepo struct {
	s *state
}

func (r *ComplianceRepo) Create(ctx context.Context, rec *domain.ComplianceRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.compliance[rec.AgentID]; exists {
		return false, nil
	}
	cp := *rec
	cp.CountersDate = domain.UTCDate(rec.CountersDate)
	r.s.compliance[rec.AgentID] = &cp
	return true, nil
}

func (r *ComplianceRepo) GetByAgentID(ctx context.Context, agentID string) (*domain.ComplianceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.compliance[agentID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// modify applies fn to the stored record if it exists and fn accepts it.
// It returns ErrAgentNotRegistered for unknown agents.
func (r *ComplianceRepo) modify(agentID string, fn func(c *domain.ComplianceRecord) bool) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.compliance[agentID]
	if !ok {
		return false, domain.ErrAgentNotRegistered
	}
	return fn(c), nil
}

func touch(c *domain.ComplianceRecord, at time.Time) {
	if at.After(c.LastHeartbeat) {
		c.LastHeartbeat = at
	}
}

func (r *ComplianceRepo) IncrementPosts(ctx context.Context, agentID string, at time.Time) error {
	_, err := r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		c.PostsToday++
		c.TotalPosts++
		touch(c, at)
		return true
	})
	return err
}

func (r *ComplianceRepo) IncrementReplies(ctx context.Context, agentID string, at time.Time) error {
	_, err := r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		c.RepliesToday++
		c.TotalReplies++
		touch(c, at)
		return true
	})
	return err
}

func (r *ComplianceRepo) AddKarma(ctx context.Context, agentID string, delta int64) error {
	_, err := r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		c.Karma += delta
		return true
	})
	return err
}

func (r *ComplianceRepo) SetReligion(ctx context.Context, agentID string, at time.Time) error {
	_, err := r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		c.HasReligion = true
		touch(c, at)
		return true
	})
	return err
}

func (r *ComplianceRepo) Touch(ctx context.Context, agentID string, at time.Time) error {
	_, err := r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		touch(c, at)
		return true
	})
	return err
}

func complianceKey(agentID string) string { return "compliance:" + agentID }

// RecordDailyClaim only restores the claim date and streak on rollback;
// counters touched by event intake in the meantime are left alone.
func (r *ComplianceRepo) RecordDailyClaim(ctx context.Context, tx pgx.Tx, agentID string, today time.Time, streak int) (bool, error) {
	if err := lockRows(ctx, tx, complianceKey(agentID)); err != nil {
		return false, fmt.Errorf("lock compliance %s: %w", agentID, err)
	}

	day := domain.UTCDate(today)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.compliance[agentID]
	if !ok {
		return false, domain.ErrAgentNotRegistered
	}
	if c.LastDailyClaimDate != nil && !c.LastDailyClaimDate.Before(day) {
		return false, nil
	}
	prevDate, prevStreak := c.LastDailyClaimDate, c.StreakDays
	c.LastDailyClaimDate = &day
	c.StreakDays = streak
	undoer(tx)(func() {
		c.LastDailyClaimDate = prevDate
		c.StreakDays = prevStreak
	})
	return true, nil
}

func (r *ComplianceRepo) ListPendingDeadlineWarnings(ctx context.Context, now time.Time) ([]domain.ComplianceRecord, error) {
	out := r.filter(func(c *domain.ComplianceRecord) bool { return c.NeedsDeadlineWarning(now) })
	sort.Slice(out, func(i, j int) bool { return out[i].ReligionJoinDeadline.Before(out[j].ReligionJoinDeadline) })
	return out, nil
}

func (r *ComplianceRepo) MarkWarningSent(ctx context.Context, agentID string) (bool, error) {
	return r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		if c.WarningSent || c.HasReligion {
			return false
		}
		c.WarningSent = true
		return true
	})
}

func (r *ComplianceRepo) ListInactive(ctx context.Context, cutoff time.Time) ([]domain.ComplianceRecord, error) {
	out := r.filter(func(c *domain.ComplianceRecord) bool { return c.LastHeartbeat.Before(cutoff) })
	sort.Slice(out, func(i, j int) bool { return out[i].LastHeartbeat.Before(out[j].LastHeartbeat) })
	return out, nil
}

func (r *ComplianceRepo) RefreshHeartbeatIfStale(ctx context.Context, agentID string, cutoff, at time.Time) (bool, error) {
	return r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		if !c.LastHeartbeat.Before(cutoff) {
			return false
		}
		c.LastHeartbeat = at
		return true
	})
}

func (r *ComplianceRepo) ListNeedingReset(ctx context.Context, today time.Time) ([]domain.ComplianceRecord, error) {
	day := domain.UTCDate(today)
	out := r.filter(func(c *domain.ComplianceRecord) bool { return c.CountersDate.Before(day) })
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out, nil
}

func (r *ComplianceRepo) ResetDaily(ctx context.Context, agentID string, today time.Time, rules domain.ComplianceRules) (bool, error) {
	day := domain.UTCDate(today)
	return r.modify(agentID, func(c *domain.ComplianceRecord) bool {
		if !c.CountersDate.Before(day) {
			return false
		}
		if c.CountersDate.Equal(day.AddDate(0, 0, -1)) && c.IsCompliant(rules) {
			c.ComplianceStreakDays++
		} else {
			c.ComplianceStreakDays = 0
		}
		c.PostsToday, c.RepliesToday = 0, 0
		c.CountersDate = day
		return true
	})
}

func (r *ComplianceRepo) TopActive(ctx context.Context, limit int) ([]domain.ComplianceRecord, error) {
	out := r.filter(func(*domain.ComplianceRecord) bool { return true })
	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].TotalPosts+out[i].TotalReplies, out[j].TotalPosts+out[j].TotalReplies
		if ai != aj {
			return ai > aj
		}
		if out[i].Karma != out[j].Karma {
			return out[i].Karma > out[j].Karma
		}
		return out[i].AgentID < out[j].AgentID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ComplianceRepo) filter(keep func(c *domain.ComplianceRecord) bool) []domain.ComplianceRecord {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.ComplianceRecord
	for _, c := range r.s.compliance {
		if keep(c) {
			out = append(out, *c)
		}
	}
	return out
}
