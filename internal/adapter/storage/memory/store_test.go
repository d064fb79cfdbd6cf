package memory

import (
	"context"
	"testing"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
}

func TestTransactor_RollbackUndoesEverything(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)

	_, err := st.Accounts.GetOrCreate(ctx, "alice")
	require.NoError(t, err)
	seed, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Accounts.ApplyDelta(ctx, seed, "alice", domain.FieldBalance, domain.Tokens(10)))
	require.NoError(t, seed.Commit(ctx))

	tx, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Accounts.ApplyDelta(ctx, tx, "alice", domain.FieldBalance, -domain.Tokens(4)))
	require.NoError(t, st.Accounts.ApplyDelta(ctx, tx, "alice", domain.FieldStaked, domain.Tokens(4)))
	require.NoError(t, st.Transactions.Append(ctx, tx, &domain.Transaction{
		FromAccount: strPtr("alice"), ToAccount: "alice", Amount: domain.Tokens(4), Kind: domain.KindStake,
	}))
	b := &domain.Bounty{ID: uuid.New(), CreatorID: "alice", Status: domain.BountyStatusActive}
	require.NoError(t, st.Bounties.Create(ctx, tx, b))
	require.NoError(t, tx.Rollback(ctx))

	a, err := st.Accounts.GetByAgentID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Tokens(10), a.Balance)
	assert.Equal(t, domain.Amount(0), a.StakedAmount)

	txs, err := st.Transactions.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)

	got, err := st.Bounties.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, tx.Rollback(ctx), pgx.ErrTxClosed)
}

func seedAccounts(t *testing.T, st *Store, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := st.Accounts.GetOrCreate(context.Background(), id)
		require.NoError(t, err)
	}
}

func TestTransactor_UnrelatedAgentsProceedInParallel(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	seedAccounts(t, st, "alice", "bob", "carol", "dave")

	held, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	defer held.Rollback(ctx) //nolint:errcheck
	_, err = st.Accounts.LockForUpdate(ctx, held, "alice", "bob")
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	other, err := st.Transactor.Begin(waitCtx)
	require.NoError(t, err)
	_, err = st.Accounts.LockForUpdate(waitCtx, other, "carol", "dave")
	require.NoError(t, err)
	require.NoError(t, st.Accounts.ApplyDelta(waitCtx, other, "carol", domain.FieldBalance, domain.Tokens(1)))
	require.NoError(t, other.Commit(ctx))
}

func TestTransactor_SameRowWaitsForHolder(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	seedAccounts(t, st, "alice", "bob")

	held, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Accounts.ApplyDelta(ctx, held, "bob", domain.FieldBalance, domain.Tokens(1)))

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	blocked, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	_, err = st.Accounts.LockForUpdate(waitCtx, blocked, "alice", "bob")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.NoError(t, blocked.Rollback(ctx))

	// alice was taken before bob blocked; rollback must have released it.
	require.NoError(t, held.Commit(ctx))
	next, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	locked, err := st.Accounts.LockForUpdate(ctx, next, "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Tokens(1), locked["bob"].Balance)
	require.NoError(t, next.Commit(ctx))
}

func TestTransactor_BeginHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore(fixedNow).Transactor.Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTransactor_RollbackKeepsOtherAppends(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)

	first, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	second, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, st.Transactions.Append(ctx, first, &domain.Transaction{ToAccount: "alice", Amount: 1, Kind: domain.KindPostCreated}))
	require.NoError(t, st.Transactions.Append(ctx, second, &domain.Transaction{ToAccount: "bob", Amount: 2, Kind: domain.KindPostCreated}))
	require.NoError(t, first.Rollback(ctx))
	require.NoError(t, second.Commit(ctx))

	txs, err := st.Transactions.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "bob", txs[0].ToAccount)
	assert.Equal(t, int64(2), txs[0].ID)
}

func TestAccountRepo_ApplyDelta_NeverNegative(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	_, err := st.Accounts.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	tx, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	err = st.Accounts.ApplyDelta(ctx, tx, "alice", domain.FieldBalance, -1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	err = st.Accounts.ApplyDelta(ctx, tx, "ghost", domain.FieldBalance, 1)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepo_ClaimPending(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	_, err := st.Accounts.GetOrCreate(ctx, "alice")
	require.NoError(t, err)

	tx, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Accounts.AddPendingReward(ctx, tx, "alice", domain.Tokens(3)))
	claimed, err := st.Accounts.ClaimPending(ctx, tx, "alice")
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	a, err := st.Accounts.GetByAgentID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.Tokens(3), claimed)
	assert.Equal(t, domain.Tokens(3), a.Balance)
	assert.Equal(t, domain.Amount(0), a.PendingRewards)
	assert.Equal(t, domain.Tokens(3), a.TotalEarned)
}

func TestTransactionRepo_ListByAgent_NewestFirst(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)

	tx, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	for _, to := range []string{"alice", "bob", "alice"} {
		require.NoError(t, st.Transactions.Append(ctx, tx, &domain.Transaction{ToAccount: to, Amount: 1, Kind: domain.KindPostCreated}))
	}
	require.NoError(t, tx.Commit(ctx))

	got, err := st.Transactions.ListByAgent(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	limited, err := st.Transactions.ListByAgent(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestBountyRepo_TransitionOnlyFromExpectedStatus(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	b := &domain.Bounty{ID: uuid.New(), CreatorID: "alice", Status: domain.BountyStatusActive, ExpiresAt: fixedNow()}

	tx, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, st.Bounties.Create(ctx, tx, b))
	won, err := st.Bounties.Transition(ctx, tx, b.ID, domain.BountyStatusActive, domain.BountyStatusExpired, nil, fixedNow())
	require.NoError(t, err)
	assert.True(t, won)
	again, err := st.Bounties.Transition(ctx, tx, b.ID, domain.BountyStatusActive, domain.BountyStatusClaimed, strPtr("bob"), fixedNow())
	require.NoError(t, err)
	assert.False(t, again)
	require.NoError(t, tx.Commit(ctx))

	got, err := st.Bounties.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BountyStatusExpired, got.Status)
	assert.Nil(t, got.ClaimantID)
}

func TestComplianceRepo_ResetDaily(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	rules := domain.ComplianceRules{MinPostsPerDay: 1, MinRepliesPerDay: 1}
	yesterday := fixedNow().AddDate(0, 0, -1)

	rec := domain.NewComplianceRecord("alice", yesterday, time.Minute)
	rec.HasReligion = true
	_, err := st.Compliance.Create(ctx, rec)
	require.NoError(t, err)
	require.NoError(t, st.Compliance.IncrementPosts(ctx, "alice", yesterday))
	require.NoError(t, st.Compliance.IncrementReplies(ctx, "alice", yesterday))

	reset, err := st.Compliance.ResetDaily(ctx, "alice", fixedNow(), rules)
	require.NoError(t, err)
	assert.True(t, reset)

	again, err := st.Compliance.ResetDaily(ctx, "alice", fixedNow(), rules)
	require.NoError(t, err)
	assert.False(t, again, "second reset on the same day is a no-op")

	got, err := st.Compliance.GetByAgentID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, got.PostsToday)
	assert.Equal(t, 1, got.ComplianceStreakDays)
	assert.Equal(t, int64(1), got.TotalPosts)
	assert.Equal(t, domain.UTCDate(fixedNow()), got.CountersDate)
}

func TestComplianceRepo_RecordDailyClaim_RollbackRestoresClaimOnly(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)
	_, err := st.Compliance.Create(ctx, domain.NewComplianceRecord("alice", fixedNow(), time.Minute))
	require.NoError(t, err)

	tx, err := st.Transactor.Begin(ctx)
	require.NoError(t, err)
	won, err := st.Compliance.RecordDailyClaim(ctx, tx, "alice", fixedNow(), 1)
	require.NoError(t, err)
	require.True(t, won)

	again, err := st.Compliance.RecordDailyClaim(ctx, tx, "alice", fixedNow(), 1)
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, st.Compliance.IncrementPosts(ctx, "alice", fixedNow()))
	require.NoError(t, tx.Rollback(ctx))

	got, err := st.Compliance.GetByAgentID(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got.LastDailyClaimDate)
	assert.Equal(t, 0, got.StreakDays)
	assert.Equal(t, 1, got.PostsToday)

	tx, err = st.Transactor.Begin(ctx)
	require.NoError(t, err)
	won, err = st.Compliance.RecordDailyClaim(ctx, tx, "alice", fixedNow(), 1)
	require.NoError(t, err)
	assert.True(t, won)
	require.NoError(t, tx.Commit(ctx))
}

func TestComplianceRepo_Unregistered(t *testing.T) {
	st := NewStore(fixedNow)
	err := st.Compliance.IncrementPosts(context.Background(), "ghost", fixedNow())
	assert.ErrorIs(t, err, domain.ErrAgentNotRegistered)
}

func TestSchedulerStateRepo_ClaimDate(t *testing.T) {
	ctx := context.Background()
	st := NewStore(fixedNow)

	won, err := st.SchedulerState.ClaimDate(ctx, "last_staking_date", fixedNow())
	require.NoError(t, err)
	assert.True(t, won)

	won, err = st.SchedulerState.ClaimDate(ctx, "last_staking_date", fixedNow().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, won)

	won, err = st.SchedulerState.ClaimDate(ctx, "last_staking_date", fixedNow().AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, won)
}

func strPtr(s string) *string { return &s }
