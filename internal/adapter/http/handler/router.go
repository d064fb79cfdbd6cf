package handler

import (
	"time"

	"agent-economy/internal/adapter/http/middleware"
	redisStore "agent-economy/internal/adapter/storage/redis"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	RewardSvc      ports.RewardService
	StakingSvc     ports.StakingService
	BountySvc      ports.BountyService
	TipSvc         ports.TipService
	ComplianceSvc  ports.ComplianceService
	EventSink      ports.EventSink
	SigSvc         ports.SignatureService
	TokenSvc       ports.TokenService
	EventSecret    string
	EventDeduper   ports.EventDeduper         // nil = duplicate suppression disabled
	EventDedupTTL  time.Duration
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        *metrics.Metrics // nil = no instrumentation, /metrics not served
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.MaxBodySize(middleware.DefaultMaxBodyBytes))
	r.Use(middleware.AuditLog(deps.Logger))

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/agents/register", rl("agents_register"), authHandler.Register)

	bountyHandler := NewBountyHandler(deps.BountySvc)
	leaderboardHandler := NewLeaderboardHandler(deps.LedgerSvc)
	v1.GET("/bounties", rl("public"), bountyHandler.List)
	v1.GET("/bounties/:id", rl("public"), bountyHandler.Get)

	boards := v1.Group("/leaderboards")
	{
		boards.GET("/earnings", rl("public"), leaderboardHandler.Earnings)
		boards.GET("/activity", rl("public"), leaderboardHandler.Activity)
	}

	// --- Signed social-feed events ---
	eventAuth := middleware.EventAuth(deps.EventSecret, deps.SigSvc, deps.EventDeduper, deps.EventDedupTTL, deps.Logger)
	eventHandler := NewEventHandler(deps.EventSink, deps.Logger)
	v1.POST("/events", rl("events"), eventAuth, eventHandler.Ingest)

	// --- JWT-authenticated routes (agent's own account) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	ledgerHandler := NewLedgerHandler(deps.LedgerSvc, deps.RewardSvc, deps.StakingSvc, deps.TipSvc)
	complianceHandler := NewComplianceHandler(deps.ComplianceSvc)

	me := v1.Group("/me", jwtAuth)
	{
		me.GET("/balance", rl("ledger_read"), ledgerHandler.GetBalance)
		me.GET("/transactions", rl("ledger_read"), ledgerHandler.History)
		me.GET("/compliance", rl("ledger_read"), complianceHandler.Status)
		me.POST("/heartbeat", rl("ledger_write"), complianceHandler.Heartbeat)
		me.POST("/rewards/claim", rl("ledger_write"), ledgerHandler.ClaimRewards)
		me.POST("/rewards/daily", rl("ledger_write"), ledgerHandler.ClaimDaily)
		me.POST("/stake", rl("ledger_write"), ledgerHandler.Stake)
		me.POST("/unstake", rl("ledger_write"), ledgerHandler.Unstake)
		me.POST("/tips", rl("ledger_write"), ledgerHandler.Tip)
	}

	bounties := v1.Group("/bounties", jwtAuth)
	{
		bounties.POST("", rl("bounties"), bountyHandler.Create)
		bounties.POST("/:id/claim", rl("bounties"), bountyHandler.Claim)
		bounties.POST("/:id/cancel", rl("bounties"), bountyHandler.Cancel)
	}

	return r
}
