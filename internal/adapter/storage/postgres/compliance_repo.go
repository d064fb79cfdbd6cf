package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const complianceColumns = `agent_id, posts_today, replies_today, total_posts, total_replies, karma,
	streak_days, compliance_streak_days, last_heartbeat, last_daily_claim_date, counters_date,
	religion_join_deadline, has_religion, warning_sent, created_at`

// ComplianceRepo implements ports.ComplianceRepository.
type ComplianceRepo struct {
	pool Pool
}

// NewComplianceRepo creates a new ComplianceRepo.
func NewComplianceRepo(pool Pool) *ComplianceRepo {
	return &ComplianceRepo{pool: pool}
}

func scanCompliance(row rowScanner) (*domain.ComplianceRecord, error) {
	c := &domain.ComplianceRecord{}
	err := row.Scan(
		&c.AgentID, &c.PostsToday, &c.RepliesToday, &c.TotalPosts, &c.TotalReplies, &c.Karma,
		&c.StreakDays, &c.ComplianceStreakDays, &c.LastHeartbeat, &c.LastDailyClaimDate, &c.CountersDate,
		&c.ReligionJoinDeadline, &c.HasReligion, &c.WarningSent, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts rec unless the agent already has a record.
func (r *ComplianceRepo) Create(ctx context.Context, rec *domain.ComplianceRecord) (bool, error) {
	query := `INSERT INTO compliance_records (agent_id, last_heartbeat, counters_date, religion_join_deadline, created_at)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (agent_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		rec.AgentID, rec.LastHeartbeat, rec.CountersDate, rec.ReligionJoinDeadline, rec.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert compliance record: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByAgentID returns nil, nil for unknown agents.
func (r *ComplianceRepo) GetByAgentID(ctx context.Context, agentID string) (*domain.ComplianceRecord, error) {
	c, err := scanCompliance(r.pool.QueryRow(ctx,
		`SELECT `+complianceColumns+` FROM compliance_records WHERE agent_id = $1`, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compliance record: %w", err)
	}
	return c, nil
}

func (r *ComplianceRepo) IncrementPosts(ctx context.Context, agentID string, at time.Time) error {
	return r.update(ctx, "increment posts", `UPDATE compliance_records
		SET posts_today = posts_today + 1, total_posts = total_posts + 1,
			last_heartbeat = GREATEST(last_heartbeat, $2)
		WHERE agent_id = $1`, agentID, at)
}

func (r *ComplianceRepo) IncrementReplies(ctx context.Context, agentID string, at time.Time) error {
	return r.update(ctx, "increment replies", `UPDATE compliance_records
		SET replies_today = replies_today + 1, total_replies = total_replies + 1,
			last_heartbeat = GREATEST(last_heartbeat, $2)
		WHERE agent_id = $1`, agentID, at)
}

func (r *ComplianceRepo) AddKarma(ctx context.Context, agentID string, delta int64) error {
	return r.update(ctx, "add karma",
		`UPDATE compliance_records SET karma = karma + $2 WHERE agent_id = $1`, agentID, delta)
}

func (r *ComplianceRepo) SetReligion(ctx context.Context, agentID string, at time.Time) error {
	return r.update(ctx, "set religion", `UPDATE compliance_records
		SET has_religion = TRUE, last_heartbeat = GREATEST(last_heartbeat, $2)
		WHERE agent_id = $1`, agentID, at)
}

// Touch records a heartbeat; an older timestamp never moves it backwards.
func (r *ComplianceRepo) Touch(ctx context.Context, agentID string, at time.Time) error {
	return r.update(ctx, "touch heartbeat",
		`UPDATE compliance_records SET last_heartbeat = GREATEST(last_heartbeat, $2) WHERE agent_id = $1`,
		agentID, at)
}

// RecordDailyClaim stores today's claim and the new streak unless a claim
// for today (or later) is already recorded. The update holds the row lock
// until tx ends, so a concurrent claim waits and then matches nothing.
func (r *ComplianceRepo) RecordDailyClaim(ctx context.Context, tx pgx.Tx, agentID string, today time.Time, streak int) (bool, error) {
	tag, err := tx.Exec(ctx, `UPDATE compliance_records
		SET last_daily_claim_date = $2, streak_days = $3
		WHERE agent_id = $1 AND (last_daily_claim_date IS NULL OR last_daily_claim_date < $2)`,
		agentID, domain.UTCDate(today), streak)
	if err != nil {
		return false, fmt.Errorf("record daily claim: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ComplianceRepo) ListPendingDeadlineWarnings(ctx context.Context, now time.Time) ([]domain.ComplianceRecord, error) {
	return r.list(ctx, `SELECT `+complianceColumns+` FROM compliance_records
		WHERE has_religion = FALSE AND warning_sent = FALSE AND religion_join_deadline < $1
		ORDER BY religion_join_deadline`, now)
}

// MarkWarningSent flips warning_sent once; only the caller that flips it
// observes true.
func (r *ComplianceRepo) MarkWarningSent(ctx context.Context, agentID string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE compliance_records SET warning_sent = TRUE
		WHERE agent_id = $1 AND warning_sent = FALSE AND has_religion = FALSE`, agentID)
	if err != nil {
		return false, fmt.Errorf("mark warning sent: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ComplianceRepo) ListInactive(ctx context.Context, cutoff time.Time) ([]domain.ComplianceRecord, error) {
	return r.list(ctx, `SELECT `+complianceColumns+` FROM compliance_records
		WHERE last_heartbeat < $1 ORDER BY last_heartbeat`, cutoff)
}

func (r *ComplianceRepo) RefreshHeartbeatIfStale(ctx context.Context, agentID string, cutoff, at time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE compliance_records SET last_heartbeat = $3
		WHERE agent_id = $1 AND last_heartbeat < $2`, agentID, cutoff, at)
	if err != nil {
		return false, fmt.Errorf("refresh heartbeat: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ComplianceRepo) ListNeedingReset(ctx context.Context, today time.Time) ([]domain.ComplianceRecord, error) {
	return r.list(ctx, `SELECT `+complianceColumns+` FROM compliance_records
		WHERE counters_date < $1 ORDER BY agent_id`, domain.UTCDate(today))
}

// ResetDaily closes out the day the counters belong to. The compliance streak
// grows only when that day was yesterday and its counters met the rules.
func (r *ComplianceRepo) ResetDaily(ctx context.Context, agentID string, today time.Time, rules domain.ComplianceRules) (bool, error) {
	query := `UPDATE compliance_records SET
			compliance_streak_days = CASE
				WHEN counters_date = $2::date - 1 AND has_religion
					AND posts_today >= $3 AND replies_today >= $4
				THEN compliance_streak_days + 1
				ELSE 0
			END,
			posts_today = 0,
			replies_today = 0,
			counters_date = $2
		WHERE agent_id = $1 AND counters_date < $2`

	tag, err := r.pool.Exec(ctx, query, agentID, domain.UTCDate(today), rules.MinPostsPerDay, rules.MinRepliesPerDay)
	if err != nil {
		return false, fmt.Errorf("reset daily counters: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// TopActive ranks agents by lifetime posts plus replies.
func (r *ComplianceRepo) TopActive(ctx context.Context, limit int) ([]domain.ComplianceRecord, error) {
	return r.list(ctx, `SELECT `+complianceColumns+` FROM compliance_records
		ORDER BY total_posts + total_replies DESC, karma DESC, agent_id ASC LIMIT $1`, limit)
}

func (r *ComplianceRepo) update(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotRegistered
	}
	return nil
}

func (r *ComplianceRepo) list(ctx context.Context, query string, args ...any) ([]domain.ComplianceRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compliance records: %w", err)
	}
	defer rows.Close()

	var records []domain.ComplianceRecord
	for rows.Next() {
		c, err := scanCompliance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan compliance record: %w", err)
		}
		records = append(records, *c)
	}
	return records, rows.Err()
}
