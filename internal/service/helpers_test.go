package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"agent-economy/internal/adapter/storage/memory"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = domain.ComplianceRules{MinPostsPerDay: 1, MinRepliesPerDay: 3}

const (
	testJoinWindow = 5 * time.Minute
	testYieldBps   = 100
)

// testClock is a settable ports.Clock.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// t0 is midday so that short advances stay on the same UTC date.
func t0() time.Time {
	return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
}

type testEnv struct {
	store      *memory.Store
	clock      *testClock
	rewards    *RewardServiceImpl
	staking    *StakingServiceImpl
	bounties   *BountyServiceImpl
	tips       *TipServiceImpl
	compliance *ComplianceServiceImpl
	ledger     *LedgerServiceImpl
	events     *EventService
}

func newTestEnv(t *testing.T, notifier ports.Notifier) *testEnv {
	t.Helper()
	clock := newTestClock(t0())
	st := memory.NewStore(clock.Now)
	log := zerolog.Nop()

	env := &testEnv{store: st, clock: clock}
	env.rewards = NewRewardService(st.Accounts, st.Transactions, st.Compliance, st.Transactor, clock, nil, log)
	env.staking = NewStakingService(st.Accounts, st.Transactions, env.rewards, st.Transactor, clock, testYieldBps, nil, log)
	env.bounties = NewBountyService(st.Accounts, st.Transactions, st.Bounties, st.Transactor, notifier, clock, DefaultBountyPolicy(), nil, log)
	env.tips = NewTipService(st.Accounts, st.Transactions, st.Transactor, notifier, clock, nil, log)
	env.compliance = NewComplianceService(st.Compliance, st.Accounts, clock, testRules, testJoinWindow, log)
	env.ledger = NewLedgerService(st.Accounts, st.Transactions, st.Compliance, clock)
	env.events = NewEventService(env.compliance, env.rewards, log)
	return env
}

// fund gives agentID amount of spendable balance through a claimed reward.
func (e *testEnv) fund(t *testing.T, agentID string, amount domain.Amount) {
	t.Helper()
	ctx := context.Background()
	_, err := e.rewards.GrantReward(ctx, agentID, amount, domain.KindDebateWin, "seed")
	require.NoError(t, err)
	_, err = e.rewards.ClaimPendingRewards(ctx, agentID)
	require.NoError(t, err)
}

func (e *testEnv) account(t *testing.T, agentID string) *domain.Account {
	t.Helper()
	a, err := e.store.Accounts.GetByAgentID(context.Background(), agentID)
	require.NoError(t, err)
	require.NotNil(t, a, "account %s", agentID)
	return a
}

func (e *testEnv) txsOfKind(t *testing.T, kind domain.TransactionKind) []domain.Transaction {
	t.Helper()
	all, err := e.store.Transactions.ListAll(context.Background())
	require.NoError(t, err)
	var out []domain.Transaction
	for _, tx := range all {
		if tx.Kind == kind {
			out = append(out, tx)
		}
	}
	return out
}

// assertClosedLedger checks that every account's holdings, including the
// escrow of its active bounties, equal its net flow in the transaction log,
// and that no bucket is negative.
func (e *testEnv) assertClosedLedger(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	accounts, err := e.store.Accounts.ListAll(ctx)
	require.NoError(t, err)
	txs, err := e.store.Transactions.ListAll(ctx)
	require.NoError(t, err)
	active, err := e.store.Bounties.ListActive(ctx, 0)
	require.NoError(t, err)

	net := make(map[string]domain.Amount)
	for _, tx := range txs {
		assert.True(t, tx.Amount.IsPositive(), "transaction %d amount", tx.ID)
		net[tx.ToAccount] += tx.Amount
		if tx.FromAccount != nil {
			net[*tx.FromAccount] -= tx.Amount
		}
	}
	escrow := make(map[string]domain.Amount)
	for _, b := range active {
		escrow[b.CreatorID] += b.Reward
	}

	for _, a := range accounts {
		assert.GreaterOrEqual(t, int64(a.Balance), int64(0), "balance of %s", a.AgentID)
		assert.GreaterOrEqual(t, int64(a.StakedAmount), int64(0), "stake of %s", a.AgentID)
		held := a.Balance + a.StakedAmount + a.PendingRewards + escrow[a.AgentID]
		assert.Equal(t, net[a.AgentID], held, "holdings of %s", a.AgentID)
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code, appErr.Message)
}
