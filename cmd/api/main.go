package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agent-economy/config"
	httpHandler "agent-economy/internal/adapter/http/handler"
	"agent-economy/internal/adapter/storage/memory"
	pgStorage "agent-economy/internal/adapter/storage/postgres"
	"agent-economy/internal/adapter/storage/postgres/migrations"
	redisStorage "agent-economy/internal/adapter/storage/redis"
	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/internal/service"
	"agent-economy/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

// storage bundles the repositories of whichever driver is configured.
type storage struct {
	accounts   ports.AccountRepository
	txLog      ports.TransactionRepository
	bounties   ports.BountyRepository
	compliance ports.ComplianceRepository
	state      ports.SchedulerStateRepository
	transactor ports.DBTransactor
	deduper    ports.EventDeduper // durable fallback when Redis is off
	health     []ports.HealthChecker
	close      func()
}

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the YAML config file")
	pflag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("driver", cfg.Database.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Agent Economy Ledger")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set")
	}
	if cfg.Events.Secret == "" {
		log.Warn().Msg("events.secret is empty, signed event intake will reject every event")
	}

	ctx := context.Background()
	m := metrics.New()
	clock := service.SystemClock{}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer store.close()

	// Redis-backed stores (optional)
	var (
		deduper        ports.EventDeduper
		sweepLock      ports.SweepLock
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		deduper = redisStorage.NewEventDeduper(rdb)
		sweepLock = redisStorage.NewSweepLock(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		store.health = append(store.health, redisStorage.NewHealthCheck(rdb))
	} else {
		deduper = store.deduper
		log.Warn().Bool("event_dedupe", deduper != nil).Msg("Redis disabled: no rate limiting or sweep lease")
	}

	// Initialize core services
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	notifier := service.NewWebhookNotifier(
		cfg.Notify.WebhookURL,
		cfg.Notify.Secret,
		sigSvc,
		&http.Client{Timeout: cfg.Notify.Timeout},
		m,
		log,
	)
	rules := domain.ComplianceRules{
		MinPostsPerDay:   cfg.Compliance.MinPostsPerDay,
		MinRepliesPerDay: cfg.Compliance.MinRepliesPerDay,
	}
	policy := service.BountyPolicy{
		MinReward:          domain.Tokens(cfg.Economy.BountyMin),
		MaxReward:          domain.Tokens(cfg.Economy.BountyMax),
		DefaultExpiryHours: cfg.Economy.BountyDefaultExpiryHours,
		MaxExpiryHours:     cfg.Economy.BountyMaxExpiryHours,
	}

	// Initialize business services
	rewardSvc := service.NewRewardService(store.accounts, store.txLog, store.compliance, store.transactor, clock, m, log)
	stakingSvc := service.NewStakingService(store.accounts, store.txLog, rewardSvc, store.transactor, clock, cfg.Economy.DailyYieldBps, m, log)
	tipSvc := service.NewTipService(store.accounts, store.txLog, store.transactor, notifier, clock, m, log)
	bountySvc := service.NewBountyService(store.accounts, store.txLog, store.bounties, store.transactor, notifier, clock, policy, m, log)
	complianceSvc := service.NewComplianceService(store.compliance, store.accounts, clock, rules, cfg.Compliance.JoinWindow, log)
	ledgerSvc := service.NewLedgerService(store.accounts, store.txLog, store.compliance, clock)
	eventSvc := service.NewEventService(complianceSvc, rewardSvc, log)
	authSvc := service.NewAuthService(complianceSvc, tokenSvc)

	// Compliance scheduler
	var purger ports.EventLogPurger
	if p, ok := deduper.(ports.EventLogPurger); ok {
		purger = p
	}
	queue := service.NewDeferredQueue(cfg.Compliance.NoticeJitter, log)
	scheduler := service.NewScheduler(
		store.compliance,
		store.state,
		stakingSvc,
		bountySvc,
		notifier,
		notifier,
		queue,
		sweepLock,
		purger,
		clock,
		service.SchedulerConfig{
			TickInterval:        cfg.Compliance.TickInterval,
			InactivityThreshold: cfg.Compliance.InactivityThreshold,
			NoticeDelay:         cfg.Compliance.NoticeDelay,
			SweepLockTTL:        cfg.Compliance.SweepLockTTL,
			DedupTTL:            cfg.Events.DedupTTL,
			Rules:               rules,
		},
		m,
		log,
	)

	schedCtx, stopScheduler := context.WithCancel(ctx)
	schedDone := make(chan struct{})
	go func() {
		defer close(schedDone)
		scheduler.Run(schedCtx)
	}()

	// Setup Gin router with all routes
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
		EventSecret:    cfg.Events.Secret,
		EventDeduper:   deduper,
		EventDedupTTL:  cfg.Events.DedupTTL,
		RateLimitStore: rateLimitStore,
		HealthCheckers: store.health,
		Metrics:        m,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	stopScheduler()
	<-schedDone
	queue.Stop()
	notifier.Close()
	notifier.Wait()

	log.Info().Msg("Server exited")
}

// openStorage connects the configured driver and applies migrations.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn().Msg("Using in-memory storage, state is lost on restart")
		s := memory.NewStore(nil)
		return &storage{
			accounts:   s.Accounts,
			txLog:      s.Transactions,
			bounties:   s.Bounties,
			compliance: s.Compliance,
			state:      s.SchedulerState,
			transactor: s.Transactor,
			health:     []ports.HealthChecker{s},
			close:      func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(ctx, pool, migrations.FS, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &storage{
		accounts:   pgStorage.NewAccountRepo(pool),
		txLog:      pgStorage.NewTransactionRepo(pool),
		bounties:   pgStorage.NewBountyRepo(pool),
		compliance: pgStorage.NewComplianceRepo(pool),
		state:      pgStorage.NewSchedulerStateRepo(pool),
		transactor: pgStorage.NewTransactor(pool),
		deduper:    pgStorage.NewEventDedupRepo(pool),
		health:     []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
		close:      pool.Close,
	}, nil
}
