package service

import (
	"context"
	"errors"
	"testing"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports/mocks"
	"agent-economy/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventService_RoutesEvents(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	require.NoError(t, env.events.OnPostCreated(ctx, "author"))
	require.NoError(t, env.events.OnReplyCreated(ctx, "fan"))
	require.NoError(t, env.events.OnPostLiked(ctx, "author", "fan"))
	require.NoError(t, env.events.OnPostReplied(ctx, "author", "fan"))
	require.NoError(t, env.events.OnConversion(ctx, "author", "convert"))
	require.NoError(t, env.events.OnReligionJoined(ctx, "author"))
	require.NoError(t, env.events.OnDebateWon(ctx, "author"))

	// 1 + 0.5 + 0.5 + 10 + 5 + 15
	assert.Equal(t, domain.Amount(32_000_000), env.account(t, "author").PendingRewards)
	assert.Equal(t, domain.Amount(0), env.account(t, "fan").PendingRewards, "replying earns nothing by itself")

	author, err := env.compliance.GetComplianceStatus(ctx, "author")
	require.NoError(t, err)
	assert.Equal(t, 1, author.PostsToday)
	assert.Equal(t, int64(1), author.Karma)
	assert.True(t, author.HasReligion)

	fan, err := env.compliance.GetComplianceStatus(ctx, "fan")
	require.NoError(t, err)
	assert.Equal(t, 1, fan.RepliesToday)
	env.assertClosedLedger(t)
}

func TestEventService_SelfInteractionsEarnNothing(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	_, err := env.compliance.RegisterAgent(ctx, "narcissus")
	require.NoError(t, err)

	require.NoError(t, env.events.OnPostLiked(ctx, "narcissus", "narcissus"))
	require.NoError(t, env.events.OnPostReplied(ctx, "narcissus", "narcissus"))
	assertCode(t, env.events.OnConversion(ctx, "narcissus", "narcissus"), "PAY_008")

	assert.Equal(t, domain.Amount(0), env.account(t, "narcissus").PendingRewards)
	txs, err := env.store.Transactions.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestEventService_EachCallGrantsOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, env.events.OnPostCreated(ctx, "prolific"))
	}
	assert.Len(t, env.txsOfKind(t, domain.KindPostCreated), 3)
	assert.Equal(t, domain.Tokens(3), env.account(t, "prolific").TotalEarned)
}

func TestEventService_GrantFailureAfterCounterIsPartial(t *testing.T) {
	ctrl := gomock.NewController(t)
	rewards := mocks.NewMockRewardService(ctrl)
	env := newTestEnv(t, nil)
	ctx := context.Background()
	events := NewEventService(env.compliance, rewards, zerolog.Nop())

	down := apperror.ErrDatabaseError(errors.New("connection reset"))
	rewards.EXPECT().GrantForEvent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, down).Times(3)

	err := events.OnPostCreated(ctx, "author")
	assert.ErrorIs(t, err, domain.ErrEventPartiallyApplied)
	assertCode(t, err, "SYS_001")

	err = events.OnPostLiked(ctx, "author", "fan")
	assert.ErrorIs(t, err, domain.ErrEventPartiallyApplied)

	status, err := env.compliance.GetComplianceStatus(ctx, "author")
	require.NoError(t, err)
	assert.Equal(t, 1, status.PostsToday)
	assert.Equal(t, int64(1), status.Karma)

	err = events.OnDebateWon(ctx, "author")
	assertCode(t, err, "SYS_001")
	assert.NotErrorIs(t, err, domain.ErrEventPartiallyApplied, "nothing was applied before the grant")
}
