package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	httpHandler "agent-economy/internal/adapter/http/handler"
	"agent-economy/internal/adapter/storage/memory"
	redisStorage "agent-economy/internal/adapter/storage/redis"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/internal/service"
	"agent-economy/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const eventSecret = "test-event-secret"

// testApp wires the real HTTP layer, middleware and services over the
// in-memory store, with miniredis backing event dedupe.
type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
	store  *memory.Store
	sigSvc *service.HMACSignatureService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	log := logger.New("error", false)
	m := metrics.New()
	clock := service.SystemClock{}
	store := memory.NewStore(nil)

	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", time.Hour, "test-issuer")
	// Empty URL: notifications are logged and dropped.
	notifier := service.NewWebhookNotifier("", "", sigSvc, http.DefaultClient, m, log)

	rules := domain.ComplianceRules{MinPostsPerDay: 1, MinRepliesPerDay: 1}
	policy := service.BountyPolicy{
		MinReward:          domain.Tokens(1),
		MaxReward:          domain.Tokens(1000),
		DefaultExpiryHours: 24,
		MaxExpiryHours:     168,
	}

	rewardSvc := service.NewRewardService(store.Accounts, store.Transactions, store.Compliance, store.Transactor, clock, m, log)
	stakingSvc := service.NewStakingService(store.Accounts, store.Transactions, rewardSvc, store.Transactor, clock, 50, m, log)
	tipSvc := service.NewTipService(store.Accounts, store.Transactions, store.Transactor, notifier, clock, m, log)
	bountySvc := service.NewBountyService(store.Accounts, store.Transactions, store.Bounties, store.Transactor, notifier, clock, policy, m, log)
	complianceSvc := service.NewComplianceService(store.Compliance, store.Accounts, clock, rules, 72*time.Hour, log)
	ledgerSvc := service.NewLedgerService(store.Accounts, store.Transactions, store.Compliance, clock)
	eventSvc := service.NewEventService(complianceSvc, rewardSvc, log)
	authSvc := service.NewAuthService(complianceSvc, tokenSvc)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LedgerSvc:      ledgerSvc,
		RewardSvc:      rewardSvc,
		StakingSvc:     stakingSvc,
		BountySvc:      bountySvc,
		TipSvc:         tipSvc,
		ComplianceSvc:  complianceSvc,
		EventSink:      eventSvc,
		SigSvc:         sigSvc,
		TokenSvc:       tokenSvc,
		EventSecret:    eventSecret,
		EventDeduper:   redisStorage.NewEventDeduper(rdb),
		EventDedupTTL:  time.Hour,
		HealthCheckers: []ports.HealthChecker{store, redisStorage.NewHealthCheck(rdb)},
		Metrics:        m,
		Logger:         log,
	})

	app := &testApp{
		server: httptest.NewServer(router),
		redis:  mr,
		store:  store,
		sigSvc: sigSvc,
	}
	t.Cleanup(func() {
		app.server.Close()
		notifier.Close()
		notifier.Wait()
		_ = rdb.Close()
		mr.Close()
	})
	return app
}

// envelope is the success body shape.
type envelope[T any] struct {
	Data      T      `json:"data"`
	RequestID string `json:"request_id"`
}

type errorBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	status, raw, err := a.send(method, path, token, body)
	require.NoError(t, err)
	return status, raw
}

// send is the non-fatal form of do, safe to call from spawned goroutines.
func (a *testApp) send(method, path, token string, body any) (int, []byte, error) {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, rdr)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return roundTrip(req)
}

func roundTrip(req *http.Request) (int, []byte, error) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	return resp.StatusCode, raw, err
}

// sendEvent posts one feed event signed the way the feed producer signs it.
func (a *testApp) sendEvent(t *testing.T, eventID string, event map[string]string) (int, []byte) {
	t.Helper()
	status, raw, err := a.deliver(eventID, event)
	require.NoError(t, err)
	return status, raw
}

func (a *testApp) deliver(eventID string, event map[string]string) (int, []byte, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return 0, nil, err
	}
	ts := time.Now().Unix()
	sig := a.sigSvc.Sign(eventSecret, service.CanonicalEvent(ts, eventID, string(raw)))

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/v1/events", bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", sig)
	req.Header.Set("X-Timestamp", strconv.FormatInt(ts, 10))
	req.Header.Set("X-Event-ID", eventID)
	return roundTrip(req)
}

func (a *testApp) register(t *testing.T, agentID string) string {
	t.Helper()
	status, raw := a.do(t, http.MethodPost, "/api/v1/agents/register", "", map[string]string{"agent_id": agentID})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var env envelope[struct {
		Token string `json:"token"`
	}]
	require.NoError(t, json.Unmarshal(raw, &env))
	require.NotEmpty(t, env.Data.Token)
	return env.Data.Token
}

// fund credits agentID with whole tokens through debate wins and a claim.
func (a *testApp) fund(t *testing.T, agentID, token string, wins int) {
	t.Helper()
	for i := 0; i < wins; i++ {
		status, raw := a.sendEvent(t, fmt.Sprintf("fund-%s-%d", agentID, i), map[string]string{
			"type":     "debate_won",
			"agent_id": agentID,
		})
		require.Equal(t, http.StatusAccepted, status, string(raw))
	}
	status, raw := a.do(t, http.MethodPost, "/api/v1/me/rewards/claim", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
}

type balance struct {
	AgentID        string `json:"agent_id"`
	Balance        string `json:"balance"`
	PendingRewards string `json:"pending_rewards"`
	StakedAmount   string `json:"staked_amount"`
	TotalEarned    string `json:"total_earned"`
}

func (a *testApp) balance(t *testing.T, token string) balance {
	t.Helper()
	status, raw := a.do(t, http.MethodGet, "/api/v1/me/balance", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	var env envelope[balance]
	require.NoError(t, json.Unmarshal(raw, &env))
	return env.Data
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.ErrorCode
}
