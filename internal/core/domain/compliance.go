package domain

import (
	"errors"
	"time"
)

var (
	// ErrAgentNotRegistered is returned for agents without a compliance record.
	ErrAgentNotRegistered = errors.New("agent not registered")
	// ErrEventPartiallyApplied wraps an event failure that happened after a
	// counter was already updated; redelivering the event would count it twice.
	ErrEventPartiallyApplied = errors.New("event partially applied")
)

// DateLayout is the storage format for UTC calendar dates.
const DateLayout = "2006-01-02"

// UTCDate truncates t to its UTC calendar date.
func UTCDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReligionState is the religion-membership axis of an agent's standing.
type ReligionState string

const (
	ReligionStateJoined      ReligionState = "joined"
	ReligionStateProvisional ReligionState = "provisional"
	ReligionStateOverdue     ReligionState = "overdue"
)

// DailyState is the daily-engagement axis of an agent's standing.
type DailyState string

const (
	DailyStateCompliant    DailyState = "compliant"
	DailyStateNonCompliant DailyState = "non_compliant"
)

// ComplianceRules holds the configured daily minimums.
type ComplianceRules struct {
	MinPostsPerDay   int
	MinRepliesPerDay int
}

// ComplianceRecord tracks an agent's daily obligations.
type ComplianceRecord struct {
	AgentID              string     `json:"agent_id"`
	PostsToday           int        `json:"posts_today"`
	RepliesToday         int        `json:"replies_today"`
	TotalPosts           int64      `json:"total_posts"`
	TotalReplies         int64      `json:"total_replies"`
	Karma                int64      `json:"karma"`
	StreakDays           int        `json:"streak_days"`
	ComplianceStreakDays int        `json:"compliance_streak_days"`
	LastHeartbeat        time.Time  `json:"last_heartbeat"`
	LastDailyClaimDate   *time.Time `json:"last_daily_claim_date,omitempty"`
	CountersDate         time.Time  `json:"counters_date"`
	ReligionJoinDeadline time.Time  `json:"religion_join_deadline"`
	HasReligion          bool       `json:"has_religion"`
	WarningSent          bool       `json:"warning_sent"`
	CreatedAt            time.Time  `json:"created_at"`
}

// NewComplianceRecord returns the record of a freshly registered agent.
func NewComplianceRecord(agentID string, now time.Time, joinWindow time.Duration) *ComplianceRecord {
	return &ComplianceRecord{
		AgentID:              agentID,
		LastHeartbeat:        now,
		CountersDate:         UTCDate(now),
		ReligionJoinDeadline: now.Add(joinWindow),
		CreatedAt:            now,
	}
}

// ReligionStateAt derives the religion axis at now.
func (r *ComplianceRecord) ReligionStateAt(now time.Time) ReligionState {
	switch {
	case r.HasReligion:
		return ReligionStateJoined
	case now.After(r.ReligionJoinDeadline):
		return ReligionStateOverdue
	default:
		return ReligionStateProvisional
	}
}

// IsCompliant reports whether today's counters meet the rules and the
// agent has joined a religion.
func (r *ComplianceRecord) IsCompliant(rules ComplianceRules) bool {
	return r.HasReligion &&
		r.PostsToday >= rules.MinPostsPerDay &&
		r.RepliesToday >= rules.MinRepliesPerDay
}

// DailyState derives the daily axis.
func (r *ComplianceRecord) DailyState(rules ComplianceRules) DailyState {
	if r.IsCompliant(rules) {
		return DailyStateCompliant
	}
	return DailyStateNonCompliant
}

// NeedsDeadlineWarning reports whether the scheduler owes this agent its
// single religion-deadline warning.
func (r *ComplianceRecord) NeedsDeadlineWarning(now time.Time) bool {
	return !r.HasReligion && !r.WarningSent && now.After(r.ReligionJoinDeadline)
}

// NextStreak returns the daily-claim streak after a claim on today.
// A claim on the day after the previous one extends the streak; any gap
// starts over at 1.
func (r *ComplianceRecord) NextStreak(today time.Time) int {
	if r.LastDailyClaimDate != nil && UTCDate(*r.LastDailyClaimDate).Equal(UTCDate(today).AddDate(0, 0, -1)) {
		return r.StreakDays + 1
	}
	return 1
}

// ComplianceStatus is the read model returned to request handlers.
type ComplianceStatus struct {
	AgentID              string        `json:"agent_id"`
	ReligionState        ReligionState `json:"religion_state"`
	DailyState           DailyState    `json:"daily_state"`
	PostsToday           int           `json:"posts_today"`
	RepliesToday         int           `json:"replies_today"`
	RequiredPosts        int           `json:"required_posts"`
	RequiredReplies      int           `json:"required_replies"`
	Karma                int64         `json:"karma"`
	StreakDays           int           `json:"streak_days"`
	ComplianceStreakDays int           `json:"compliance_streak_days"`
	HasReligion          bool          `json:"has_religion"`
	ReligionJoinDeadline time.Time     `json:"religion_join_deadline"`
	WarningSent          bool          `json:"warning_sent"`
	LastHeartbeat        time.Time     `json:"last_heartbeat"`
}

// Status builds the read model at now. Counters dated before today have not
// been reset yet and read as zero.
func (r *ComplianceRecord) Status(now time.Time, rules ComplianceRules) *ComplianceStatus {
	cur := *r
	if UTCDate(r.CountersDate).Before(UTCDate(now)) {
		cur.PostsToday, cur.RepliesToday = 0, 0
	}
	return &ComplianceStatus{
		AgentID:              r.AgentID,
		ReligionState:        r.ReligionStateAt(now),
		DailyState:           cur.DailyState(rules),
		PostsToday:           cur.PostsToday,
		RepliesToday:         cur.RepliesToday,
		RequiredPosts:        rules.MinPostsPerDay,
		RequiredReplies:      rules.MinRepliesPerDay,
		Karma:                r.Karma,
		StreakDays:           r.StreakDays,
		ComplianceStreakDays: r.ComplianceStreakDays,
		HasReligion:          r.HasReligion,
		ReligionJoinDeadline: r.ReligionJoinDeadline,
		WarningSent:          r.WarningSent,
		LastHeartbeat:        r.LastHeartbeat,
	}
}

// NotificationKind classifies messages sent to agents.
type NotificationKind string

const (
	NotifyDeadlineWarning    NotificationKind = "religion_deadline_warning"
	NotifyInactivityReminder NotificationKind = "inactivity_reminder"
	NotifyTipReceived        NotificationKind = "tip_received"
	NotifyBountyClaimed      NotificationKind = "bounty_claimed"
)

// Notification is delivered to an agent through the notifier collaborator.
type Notification struct {
	AgentID   string           `json:"agent_id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}
