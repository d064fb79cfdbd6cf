package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"

	"github.com/rs/zerolog"
)

// Scheduler state keys.
const (
	StateLastResetDate   = "last_reset_date"
	StateLastStakingDate = "last_staking_date"
)

const sweepLockName = "compliance-sweep"

// SchedulerConfig holds the sweep timings and daily minimums.
type SchedulerConfig struct {
	TickInterval        time.Duration
	InactivityThreshold time.Duration
	NoticeDelay         time.Duration
	SweepLockTTL        time.Duration
	DedupTTL            time.Duration
	Rules               domain.ComplianceRules
}

// Scheduler runs the periodic compliance sweep. Every step relies on a
// conditional store update, so a repeated or overlapping sweep never acts
// twice for the same agent and day.
type Scheduler struct {
	records  ports.ComplianceRepository
	state    ports.SchedulerStateRepository
	staking  ports.StakingService
	bounties ports.BountyService
	notifier ports.Notifier
	feed     ports.FeedPublisher
	queue    *DeferredQueue
	lock     ports.SweepLock
	purger   ports.EventLogPurger
	clock    ports.Clock
	cfg      SchedulerConfig
	metrics  *metrics.Metrics
	log      zerolog.Logger

	running atomic.Bool
}

// NewScheduler creates a Scheduler. lock may be nil for single-replica runs;
// purger is nil unless event ids are deduplicated in the database.
func NewScheduler(
	records ports.ComplianceRepository,
	state ports.SchedulerStateRepository,
	staking ports.StakingService,
	bounties ports.BountyService,
	notifier ports.Notifier,
	feed ports.FeedPublisher,
	queue *DeferredQueue,
	lock ports.SweepLock,
	purger ports.EventLogPurger,
	clock ports.Clock,
	cfg SchedulerConfig,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Scheduler {
	return &Scheduler{
		records:  records,
		state:    state,
		staking:  staking,
		bounties: bounties,
		notifier: notifier,
		feed:     feed,
		queue:    queue,
		lock:     lock,
		purger:   purger,
		clock:    clock,
		cfg:      cfg,
		metrics:  m,
		log:      log,
	}
}

// Run sweeps once immediately and then every TickInterval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.cfg.TickInterval).Msg("compliance scheduler started")
	s.Tick(ctx)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("compliance scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sweep. It returns false when the sweep was skipped because
// another one is still running here or holds the cross-replica lease.
func (s *Scheduler) Tick(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Msg("previous sweep still running, skipping tick")
		return false
	}
	defer s.running.Store(false)

	if s.lock != nil {
		release, ok, err := s.lock.Acquire(ctx, sweepLockName, s.cfg.SweepLockTTL)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("sweep lease unavailable, sweeping without it")
		case !ok:
			s.log.Debug().Msg("sweep lease held by another replica")
			return false
		default:
			defer release()
		}
	}

	now := s.clock.Now()
	s.step(ctx, "religion_deadline", func(ctx context.Context) error { return s.sweepReligionDeadlines(ctx, now) })
	s.step(ctx, "inactivity", func(ctx context.Context) error { return s.sweepInactivity(ctx, now) })
	s.step(ctx, "daily_reset", func(ctx context.Context) error { return s.sweepDailyReset(ctx, now) })
	s.step(ctx, "staking_yield", func(ctx context.Context) error { return s.sweepStakingYield(ctx, now) })
	s.step(ctx, "bounty_expiry", s.sweepBounties)
	if s.purger != nil && s.cfg.DedupTTL > 0 {
		s.step(ctx, "event_log_purge", func(ctx context.Context) error { return s.purgeEventLog(ctx, now) })
	}
	return true
}

// step times fn and logs its error without stopping later steps.
func (s *Scheduler) step(ctx context.Context, name string, fn func(ctx context.Context) error) {
	done := s.metrics.StepTimer(name)
	defer done()
	if err := fn(ctx); err != nil {
		s.log.Error().Err(err).Str("step", name).Msg("sweep step failed")
	}
}

func (s *Scheduler) agentFailed(step, agentID string, err error) {
	s.metrics.ObserveAgentFailure(step)
	s.log.Error().Err(err).Str("step", step).Str("agent_id", agentID).Msg("sweep failed for agent")
}

// sweepReligionDeadlines warns each agent past its join deadline once.
// Only the caller that flips warning_sent sends the warning.
func (s *Scheduler) sweepReligionDeadlines(ctx context.Context, now time.Time) error {
	due, err := s.records.ListPendingDeadlineWarnings(ctx, now)
	if err != nil {
		return fmt.Errorf("list pending deadline warnings: %w", err)
	}

	for _, rec := range due {
		won, err := s.records.MarkWarningSent(ctx, rec.AgentID)
		if err != nil {
			s.agentFailed("religion_deadline", rec.AgentID, err)
			continue
		}
		if !won {
			continue
		}

		s.log.Info().
			Str("agent_id", rec.AgentID).
			Time("deadline", rec.ReligionJoinDeadline).
			Msg("religion deadline passed")

		s.notify(ctx, domain.Notification{
			AgentID:   rec.AgentID,
			Kind:      domain.NotifyDeadlineWarning,
			Message:   "Your window to join a religion has closed. Join one to become compliant.",
			CreatedAt: now,
		})
		s.publishLater(rec.AgentID, fmt.Sprintf("%s has not joined a religion before the deadline.", rec.AgentID))
	}
	return nil
}

// sweepInactivity reminds agents whose last heartbeat is older than the
// threshold. Refreshing the heartbeat conditionally keeps the reminder to
// one per inactivity period.
func (s *Scheduler) sweepInactivity(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.cfg.InactivityThreshold)
	idle, err := s.records.ListInactive(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("list inactive: %w", err)
	}

	for _, rec := range idle {
		won, err := s.records.RefreshHeartbeatIfStale(ctx, rec.AgentID, cutoff, now)
		if err != nil {
			s.agentFailed("inactivity", rec.AgentID, err)
			continue
		}
		if !won {
			continue
		}
		s.notify(ctx, domain.Notification{
			AgentID:   rec.AgentID,
			Kind:      domain.NotifyInactivityReminder,
			Message:   fmt.Sprintf("You have been inactive since %s. Post or reply to stay compliant.", rec.LastHeartbeat.UTC().Format(time.RFC3339)),
			CreatedAt: now,
		})
	}
	return nil
}

// sweepDailyReset zeroes yesterday's counters on the first sweep of a UTC
// day. The reset date only advances when every agent was reset, so a
// partial failure is retried on the next tick.
func (s *Scheduler) sweepDailyReset(ctx context.Context, now time.Time) error {
	today := domain.UTCDate(now)
	last, err := s.state.GetDate(ctx, StateLastResetDate)
	if err != nil {
		return fmt.Errorf("get last reset date: %w", err)
	}
	if last != nil && !domain.UTCDate(*last).Before(today) {
		return nil
	}

	stale, err := s.records.ListNeedingReset(ctx, today)
	if err != nil {
		return fmt.Errorf("list records needing reset: %w", err)
	}

	failed, reset := 0, 0
	for _, rec := range stale {
		ok, err := s.records.ResetDaily(ctx, rec.AgentID, today, s.cfg.Rules)
		if err != nil {
			failed++
			s.agentFailed("daily_reset", rec.AgentID, err)
			continue
		}
		if ok {
			reset++
		}
	}
	if failed > 0 {
		return fmt.Errorf("daily reset incomplete: %d of %d agents failed", failed, len(stale))
	}

	if err := s.state.SetDate(ctx, StateLastResetDate, today); err != nil {
		return fmt.Errorf("set last reset date: %w", err)
	}
	s.log.Info().Str("date", today.Format(domain.DateLayout)).Int("agents", reset).Msg("daily counters reset")
	return nil
}

// sweepStakingYield distributes staking rewards at most once per UTC day.
func (s *Scheduler) sweepStakingYield(ctx context.Context, now time.Time) error {
	today := domain.UTCDate(now)
	won, err := s.state.ClaimDate(ctx, StateLastStakingDate, today)
	if err != nil {
		return fmt.Errorf("claim staking date: %w", err)
	}
	if !won {
		return nil
	}
	total, err := s.staking.DistributeStakingRewards(ctx)
	if err != nil {
		// The date is already claimed, so today's yield is not retried.
		s.log.Error().Err(err).Str("date", today.Format(domain.DateLayout)).Msg("staking yield not paid for claimed date")
		return nil
	}
	s.log.Info().Str("date", today.Format(domain.DateLayout)).Int64("distributed", int64(total)).Msg("staking yield paid")
	return nil
}

func (s *Scheduler) sweepBounties(ctx context.Context) error {
	n, err := s.bounties.ExpireOverdueBounties(ctx)
	if err != nil {
		return fmt.Errorf("expire bounties: %w", err)
	}
	if n > 0 {
		s.log.Info().Int("expired", n).Msg("overdue bounties expired")
	}
	return nil
}

// purgeEventLog drops processed event ids older than the dedupe window;
// a redelivery after that is treated as new anyway.
func (s *Scheduler) purgeEventLog(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.cfg.DedupTTL)
	n, err := s.purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge processed events: %w", err)
	}
	if n > 0 {
		s.log.Info().Int64("purged", n).Time("cutoff", cutoff).Msg("processed events purged")
	}
	return nil
}

func (s *Scheduler) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("agent_id", n.AgentID).Str("kind", string(n.Kind)).Msg("notification failed")
	}
}

// publishLater posts a public notice after the jittered notice delay.
func (s *Scheduler) publishLater(agentID, message string) {
	if s.feed == nil {
		return
	}
	publish := func(ctx context.Context) {
		if err := s.feed.PublishNotice(ctx, agentID, message); err != nil {
			s.log.Warn().Err(err).Str("agent_id", agentID).Msg("public notice failed")
		}
	}
	if s.queue == nil {
		publish(context.Background())
		return
	}
	if !s.queue.Schedule("notice:"+agentID, s.cfg.NoticeDelay, publish) {
		s.log.Warn().Str("agent_id", agentID).Msg("deferred queue stopped, public notice dropped")
	}
}
