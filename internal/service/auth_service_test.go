package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register_IssuesToken(t *testing.T) {
	env := newTestEnv(t, nil)
	tokens := NewJWTTokenService(testJWTSecret, time.Hour, "agent-economy")
	svc := NewAuthService(env.compliance, tokens)

	res, err := svc.Register(context.Background(), "oracle_7")
	require.NoError(t, err)
	assert.Equal(t, "oracle_7", res.AgentID)
	assert.Equal(t, t0().Add(testJoinWindow), res.ReligionJoinDeadline)

	claims, err := tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "oracle_7", claims.AgentID)

	again, err := svc.Register(context.Background(), "oracle_7")
	require.NoError(t, err)
	assert.Equal(t, res.ReligionJoinDeadline, again.ReligionJoinDeadline)
}

func TestAuthService_Register_RejectsBadIDs(t *testing.T) {
	env := newTestEnv(t, nil)
	svc := NewAuthService(env.compliance, NewJWTTokenService(testJWTSecret, time.Hour, "agent-economy"))

	for _, id := range []string{"", "ab", "has space", "semi;colon", string(make([]byte, 65))} {
		_, err := svc.Register(context.Background(), id)
		assertCode(t, err, "PAY_002")
	}
}
