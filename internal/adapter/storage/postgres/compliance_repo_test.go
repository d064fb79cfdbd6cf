package postgres

import (
	"context"
	"testing"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func complianceCols() []string {
	return []string{"agent_id", "posts_today", "replies_today", "total_posts", "total_replies", "karma",
		"streak_days", "compliance_streak_days", "last_heartbeat", "last_daily_claim_date", "counters_date",
		"religion_join_deadline", "has_religion", "warning_sent", "created_at"}
}

func complianceRow(rows *pgxmock.Rows, c *domain.ComplianceRecord) *pgxmock.Rows {
	return rows.AddRow(c.AgentID, c.PostsToday, c.RepliesToday, c.TotalPosts, c.TotalReplies, c.Karma,
		c.StreakDays, c.ComplianceStreakDays, c.LastHeartbeat, c.LastDailyClaimDate, c.CountersDate,
		c.ReligionJoinDeadline, c.HasReligion, c.WarningSent, c.CreatedAt)
}

func TestComplianceRepo_Create_Idempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.NewComplianceRecord("agent-a", now, 5*time.Minute)

	mock.ExpectExec("INSERT INTO compliance_records .+ ON CONFLICT").
		WithArgs("agent-a", rec.LastHeartbeat, rec.CountersDate, rec.ReligionJoinDeadline, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO compliance_records .+ ON CONFLICT").
		WithArgs("agent-a", rec.LastHeartbeat, rec.CountersDate, rec.ReligionJoinDeadline, rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	created, err := repo.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplianceRepo_GetByAgentID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	rec := domain.NewComplianceRecord("agent-a", now, 5*time.Minute)
	rec.PostsToday = 2

	mock.ExpectQuery("SELECT .+ FROM compliance_records WHERE agent_id").
		WithArgs("agent-a").
		WillReturnRows(complianceRow(pgxmock.NewRows(complianceCols()), rec))

	got, err := repo.GetByAgentID(context.Background(), "agent-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.PostsToday)
	assert.Nil(t, got.LastDailyClaimDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplianceRepo_IncrementPosts_Unregistered(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)
	at := time.Now().UTC()

	mock.ExpectExec("UPDATE compliance_records SET posts_today = posts_today \\+ 1").
		WithArgs("ghost", at).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.IncrementPosts(context.Background(), "ghost", at)
	assert.ErrorIs(t, err, domain.ErrAgentNotRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplianceRepo_MarkWarningSent_OnlyOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)

	mock.ExpectExec("UPDATE compliance_records SET warning_sent = TRUE").
		WithArgs("agent-a").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE compliance_records SET warning_sent = TRUE").
		WithArgs("agent-a").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	first, err := repo.MarkWarningSent(context.Background(), "agent-a")
	require.NoError(t, err)
	second, err := repo.MarkWarningSent(context.Background(), "agent-a")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplianceRepo_ResetDaily(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	rules := domain.ComplianceRules{MinPostsPerDay: 1, MinRepliesPerDay: 3}

	mock.ExpectExec("UPDATE compliance_records SET compliance_streak_days = CASE .+ WHERE agent_id = \\$1 AND counters_date < \\$2").
		WithArgs("agent-a", today, 1, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	reset, err := repo.ResetDaily(context.Background(), "agent-a", today.Add(13*time.Hour), rules)
	require.NoError(t, err)
	assert.True(t, reset)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplianceRepo_RecordDailyClaim(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)
	today := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE compliance_records SET last_daily_claim_date = \\$2, streak_days = \\$3").
		WithArgs("agent-a", today, 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	recorded, err := repo.RecordDailyClaim(context.Background(), tx, "agent-a", today.Add(8*time.Hour), 4)
	require.NoError(t, err)
	assert.False(t, recorded)
	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplianceRepo_ListInactive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewComplianceRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	cutoff := now.Add(-4 * time.Hour)
	stale := domain.NewComplianceRecord("sleepy", now.Add(-6*time.Hour), 5*time.Minute)

	mock.ExpectQuery("SELECT .+ FROM compliance_records WHERE last_heartbeat < \\$1").
		WithArgs(cutoff).
		WillReturnRows(complianceRow(pgxmock.NewRows(complianceCols()), stale))

	got, err := repo.ListInactive(context.Background(), cutoff)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sleepy", got[0].AgentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
