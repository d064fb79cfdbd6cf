package service

import (
	"context"
	"testing"

	"agent-economy/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStakingService_StakeUnstakeRoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	env.fund(t, "a", domain.Tokens(100))

	txn, err := env.staking.Stake(ctx, "a", domain.Tokens(40))
	require.NoError(t, err)
	assert.Equal(t, domain.KindStake, txn.Kind)
	assert.Equal(t, "a", *txn.FromAccount)
	assert.Equal(t, "a", txn.ToAccount)

	a := env.account(t, "a")
	assert.Equal(t, domain.Tokens(60), a.Balance)
	assert.Equal(t, domain.Tokens(40), a.StakedAmount)
	require.NotNil(t, a.LastStakeAt)
	assert.Equal(t, t0(), *a.LastStakeAt)

	_, err = env.staking.Unstake(ctx, "a", domain.Tokens(40))
	require.NoError(t, err)

	a = env.account(t, "a")
	assert.Equal(t, domain.Tokens(100), a.Balance)
	assert.Equal(t, domain.Amount(0), a.StakedAmount)
	assert.Len(t, env.txsOfKind(t, domain.KindStake), 1)
	assert.Len(t, env.txsOfKind(t, domain.KindUnstake), 1)
	env.assertClosedLedger(t)
}

func TestStakingService_Rejections(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	env.fund(t, "a", domain.Tokens(10))

	tests := []struct {
		name string
		run  func() error
		code string
	}{
		{"stake zero", func() error { _, err := env.staking.Stake(ctx, "a", 0); return err }, "PAY_002"},
		{"stake negative", func() error { _, err := env.staking.Stake(ctx, "a", -1); return err }, "PAY_002"},
		{"stake above balance", func() error { _, err := env.staking.Stake(ctx, "a", domain.Tokens(11)); return err }, "PAY_001"},
		{"unstake above stake", func() error { _, err := env.staking.Unstake(ctx, "a", 1); return err }, "PAY_001"},
		{"stake without account", func() error { _, err := env.staking.Stake(ctx, "ghost", 1); return err }, "PAY_001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.run(), tt.code)
		})
	}

	a := env.account(t, "a")
	assert.Equal(t, domain.Tokens(10), a.Balance)
	assert.Equal(t, domain.Amount(0), a.StakedAmount)
	assert.Nil(t, a.LastStakeAt)
	assert.Empty(t, env.txsOfKind(t, domain.KindStake))
	env.assertClosedLedger(t)
}

func TestStakingService_DistributeStakingRewards(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.fund(t, "whale", domain.Tokens(1000))
	env.fund(t, "minnow", domain.Tokens(50))
	env.fund(t, "idle", domain.Tokens(500))
	env.fund(t, "dust", 1)
	_, err := env.staking.Stake(ctx, "whale", domain.Tokens(1000))
	require.NoError(t, err)
	_, err = env.staking.Stake(ctx, "minnow", domain.Tokens(50))
	require.NoError(t, err)
	_, err = env.staking.Stake(ctx, "dust", 1)
	require.NoError(t, err)

	total, err := env.staking.DistributeStakingRewards(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Tokens(10)+domain.Tokens(1)/2, total)

	assert.Equal(t, domain.Tokens(10), env.account(t, "whale").PendingRewards)
	assert.Equal(t, domain.Tokens(1)/2, env.account(t, "minnow").PendingRewards)
	assert.Equal(t, domain.Amount(0), env.account(t, "idle").PendingRewards)
	assert.Equal(t, domain.Amount(0), env.account(t, "dust").PendingRewards, "sub-unit yield is skipped")

	yields := env.txsOfKind(t, domain.KindStakingYield)
	assert.Len(t, yields, 2)
	for _, y := range yields {
		assert.True(t, y.IsMint())
	}
	env.assertClosedLedger(t)
}

func TestStakingService_DistributeStakingRewards_NoStakers(t *testing.T) {
	env := newTestEnv(t, nil)

	total, err := env.staking.DistributeStakingRewards(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(0), total)
}
