package ports

import (
	"context"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepository is the ledger store. Methods accepting pgx.Tx run inside
// the caller's database transaction; a failed step makes the caller roll
// back the whole operation.
type AccountRepository interface {
	// GetOrCreate returns the account, creating a zeroed one on first use.
	// Concurrent calls for the same new id yield exactly one row.
	GetOrCreate(ctx context.Context, agentID string) (*domain.Account, error)
	GetByAgentID(ctx context.Context, agentID string) (*domain.Account, error)
	// LockForUpdate locks the accounts in ascending agent id order.
	LockForUpdate(ctx context.Context, tx pgx.Tx, agentIDs ...string) (map[string]*domain.Account, error)
	// ApplyDelta adds delta to field, failing with domain.ErrInsufficientFunds
	// if the result would be negative.
	ApplyDelta(ctx context.Context, tx pgx.Tx, agentID string, field domain.AccountField, delta domain.Amount) error
	AddPendingReward(ctx context.Context, tx pgx.Tx, agentID string, amount domain.Amount) error
	// ClaimPending moves all pending rewards into balance and returns the moved amount.
	ClaimPending(ctx context.Context, tx pgx.Tx, agentID string) (domain.Amount, error)
	AddEarned(ctx context.Context, tx pgx.Tx, agentID string, amount domain.Amount) error
	TouchStake(ctx context.Context, tx pgx.Tx, agentID string, at time.Time) error
	ListStakers(ctx context.Context) ([]domain.Account, error)
	TopEarners(ctx context.Context, limit int) ([]domain.Account, error)
}

// TransactionRepository is the append-only transaction log.
type TransactionRepository interface {
	// Append stores t and assigns its monotonic ID.
	Append(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	ListByAgent(ctx context.Context, agentID string, limit int) ([]domain.Transaction, error)
}

// BountyRepository persists bounties. Status transitions are conditional on
// the current status so that exactly one settlement can win.
type BountyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, b *domain.Bounty) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bounty, error)
	// Transition moves the bounty from -> to and reports whether this call
	// performed the transition.
	Transition(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.BountyStatus, claimantID *string, at time.Time) (bool, error)
	ListActive(ctx context.Context, limit int) ([]domain.Bounty, error)
	ListExpiredActive(ctx context.Context, now time.Time) ([]domain.Bounty, error)
}

// ComplianceRepository persists per-agent compliance records. The Mark*
// methods are conditional and report whether they changed the row, which
// is what keeps the scheduler from repeating itself.
type ComplianceRepository interface {
	// Create inserts rec unless a record already exists; it reports whether it inserted.
	Create(ctx context.Context, rec *domain.ComplianceRecord) (bool, error)
	GetByAgentID(ctx context.Context, agentID string) (*domain.ComplianceRecord, error)
	IncrementPosts(ctx context.Context, agentID string, at time.Time) error
	IncrementReplies(ctx context.Context, agentID string, at time.Time) error
	AddKarma(ctx context.Context, agentID string, delta int64) error
	SetReligion(ctx context.Context, agentID string, at time.Time) error
	Touch(ctx context.Context, agentID string, at time.Time) error
	// RecordDailyClaim stores a claim for today inside tx unless one already
	// exists for today. It runs before the grants so the row lock serialises claims.
	RecordDailyClaim(ctx context.Context, tx pgx.Tx, agentID string, today time.Time, streak int) (bool, error)
	ListPendingDeadlineWarnings(ctx context.Context, now time.Time) ([]domain.ComplianceRecord, error)
	MarkWarningSent(ctx context.Context, agentID string) (bool, error)
	ListInactive(ctx context.Context, cutoff time.Time) ([]domain.ComplianceRecord, error)
	// RefreshHeartbeatIfStale sets last_heartbeat = at only if it is older than cutoff.
	RefreshHeartbeatIfStale(ctx context.Context, agentID string, cutoff, at time.Time) (bool, error)
	ListNeedingReset(ctx context.Context, today time.Time) ([]domain.ComplianceRecord, error)
	// ResetDaily zeroes the counters of a record whose counters_date is before
	// today and updates the compliance streak from the prior day's verdict.
	ResetDaily(ctx context.Context, agentID string, today time.Time, rules domain.ComplianceRules) (bool, error)
	TopActive(ctx context.Context, limit int) ([]domain.ComplianceRecord, error)
}

// SchedulerStateRepository stores the scheduler's per-day markers.
type SchedulerStateRepository interface {
	GetDate(ctx context.Context, key string) (*time.Time, error)
	SetDate(ctx context.Context, key string, date time.Time) error
	// ClaimDate sets key to date unless it already equals date and reports
	// whether this call made the change.
	ClaimDate(ctx context.Context, key string, date time.Time) (bool, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
