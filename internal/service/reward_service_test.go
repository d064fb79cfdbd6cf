package service

import (
	"context"
	"testing"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardService_GrantReward_CreditsPendingAndEarned(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	txn, err := env.rewards.GrantReward(ctx, "prophet", domain.Tokens(15), domain.KindDebateWin, "Won a debate")
	require.NoError(t, err)
	assert.True(t, txn.IsMint())
	assert.Equal(t, "prophet", txn.ToAccount)
	assert.NotZero(t, txn.ID)

	a := env.account(t, "prophet")
	assert.Equal(t, domain.Tokens(15), a.PendingRewards)
	assert.Equal(t, domain.Tokens(15), a.TotalEarned)
	assert.Equal(t, domain.Amount(0), a.Balance)
	env.assertClosedLedger(t)
}

func TestRewardService_GrantReward_Validation(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.rewards.GrantReward(ctx, "a", 0, domain.KindPostCreated, "")
	assertCode(t, err, "PAY_002")

	_, err = env.rewards.GrantReward(ctx, "a", -domain.Tokens(1), domain.KindPostCreated, "")
	assertCode(t, err, "PAY_002")

	_, err = env.rewards.GrantReward(ctx, "a", domain.Tokens(1), domain.KindTip, "")
	assertCode(t, err, "PAY_002")

	txs, err := env.store.Transactions.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestRewardService_GrantForEvent_UsesRewardTable(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	tests := []struct {
		kind domain.RewardKind
		want domain.Amount
	}{
		{domain.RewardPostCreated, domain.Tokens(1)},
		{domain.RewardPostLiked, 500_000},
		{domain.RewardPostReplied, 500_000},
		{domain.RewardConversionReferral, domain.Tokens(10)},
		{domain.RewardDebateWin, domain.Tokens(15)},
		{domain.RewardReligionJoined, domain.Tokens(5)},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			txn, err := env.rewards.GrantForEvent(ctx, "agent-"+string(tt.kind), tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, txn.Amount)
		})
	}

	_, err := env.rewards.GrantForEvent(ctx, "a", domain.RewardKind("sermon"))
	assertCode(t, err, "PAY_002")
}

func TestRewardService_ClaimPendingRewards_Idempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.rewards.GrantForEvent(ctx, "a", domain.RewardPostCreated)
	require.NoError(t, err)
	_, err = env.rewards.GrantForEvent(ctx, "a", domain.RewardPostLiked)
	require.NoError(t, err)

	claimed, err := env.rewards.ClaimPendingRewards(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(1_500_000), claimed)

	again, err := env.rewards.ClaimPendingRewards(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(0), again)

	a := env.account(t, "a")
	assert.Equal(t, domain.Amount(1_500_000), a.Balance)
	assert.Equal(t, domain.Amount(0), a.PendingRewards)
	assert.Len(t, env.txsOfKind(t, domain.KindRewardClaim), 1, "an empty claim appends nothing")
	env.assertClosedLedger(t)
}

func TestRewardService_ClaimPendingRewards_UnknownAgent(t *testing.T) {
	env := newTestEnv(t, nil)

	claimed, err := env.rewards.ClaimPendingRewards(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(0), claimed)
}

func TestRewardService_ClaimDailyReward_Streak(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	_, err := env.compliance.RegisterAgent(ctx, "devout")
	require.NoError(t, err)

	// Day N.
	res, err := env.rewards.ClaimDailyReward(ctx, "devout")
	require.NoError(t, err)
	assert.Equal(t, 1, res.StreakDays)
	assert.Equal(t, domain.Tokens(5), res.Granted)
	assert.Equal(t, domain.Amount(0), res.StreakBonus)

	_, err = env.rewards.ClaimDailyReward(ctx, "devout")
	assertCode(t, err, "RWD_001")

	// Day N+1.
	env.clock.Advance(24 * time.Hour)
	res, err = env.rewards.ClaimDailyReward(ctx, "devout")
	require.NoError(t, err)
	assert.Equal(t, 2, res.StreakDays)

	// Day N+2 reaches the 3-day bonus.
	env.clock.Advance(24 * time.Hour)
	res, err = env.rewards.ClaimDailyReward(ctx, "devout")
	require.NoError(t, err)
	assert.Equal(t, 3, res.StreakDays)
	assert.Equal(t, domain.Tokens(10), res.StreakBonus)

	// Skipping a day starts over.
	env.clock.Advance(48 * time.Hour)
	res, err = env.rewards.ClaimDailyReward(ctx, "devout")
	require.NoError(t, err)
	assert.Equal(t, 1, res.StreakDays)

	a := env.account(t, "devout")
	assert.Equal(t, domain.Tokens(5*4+10), a.PendingRewards)
	assert.Len(t, env.txsOfKind(t, domain.KindDailyLogin), 4)
	assert.Len(t, env.txsOfKind(t, domain.KindStreakBonus), 1)

	rec, err := env.store.Compliance.GetByAgentID(ctx, "devout")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.StreakDays)
	env.assertClosedLedger(t)
}

func TestRewardService_ClaimDailyReward_UnregisteredAgent(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.rewards.ClaimDailyReward(context.Background(), "ghost")
	assertCode(t, err, "PAY_004")
}

func TestRewardService_ClaimDailyReward_ConcurrentClaimsGrantOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	_, err := env.compliance.RegisterAgent(ctx, "eager")
	require.NoError(t, err)

	const n = 8
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := env.rewards.ClaimDailyReward(ctx, "eager")
			errs <- err
		}()
	}
	succeeded := 0
	for i := 0; i < n; i++ {
		if err := <-errs; err == nil {
			succeeded++
		} else {
			assertCode(t, err, "RWD_001")
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, env.txsOfKind(t, domain.KindDailyLogin), 1)
	env.assertClosedLedger(t)
}
