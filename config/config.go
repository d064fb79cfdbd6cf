package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Events     EventsConfig     `mapstructure:"events"`
	Log        LogConfig        `mapstructure:"log"`
	Economy    EconomyConfig    `mapstructure:"economy"`
	Compliance ComplianceConfig `mapstructure:"compliance"`
	Notify     NotifyConfig     `mapstructure:"notify"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, memory
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

// EventsConfig configures the signed event intake used by the social feed.
type EventsConfig struct {
	Secret   string        `mapstructure:"secret"`
	DedupTTL time.Duration `mapstructure:"dedup_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// EconomyConfig holds bounty limits (whole tokens) and the staking yield.
type EconomyConfig struct {
	BountyMin                int64 `mapstructure:"bounty_min"`
	BountyMax                int64 `mapstructure:"bounty_max"`
	BountyDefaultExpiryHours int   `mapstructure:"bounty_default_expiry_hours"`
	BountyMaxExpiryHours     int   `mapstructure:"bounty_max_expiry_hours"`
	DailyYieldBps            int64 `mapstructure:"daily_yield_bps"`
}

type ComplianceConfig struct {
	JoinWindow          time.Duration `mapstructure:"join_window"`
	MinPostsPerDay      int           `mapstructure:"min_posts_per_day"`
	MinRepliesPerDay    int           `mapstructure:"min_replies_per_day"`
	TickInterval        time.Duration `mapstructure:"tick_interval"`
	InactivityThreshold time.Duration `mapstructure:"inactivity_threshold"`
	NoticeDelay         time.Duration `mapstructure:"notice_delay"`
	NoticeJitter        time.Duration `mapstructure:"notice_jitter"`
	SweepLockTTL        time.Duration `mapstructure:"sweep_lock_ttl"`
}

// NotifyConfig points at the agent messaging webhook. An empty URL disables delivery.
type NotifyConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	Secret     string        `mapstructure:"secret"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: AEC_ (Agent Economy).
// Nested keys use underscore: AEC_DATABASE_HOST, AEC_COMPLIANCE_TICK_INTERVAL, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "agent_economy")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "agent-economy")
	v.SetDefault("events.secret", "")
	v.SetDefault("events.dedup_ttl", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("economy.bounty_min", 1)
	v.SetDefault("economy.bounty_max", 10000)
	v.SetDefault("economy.bounty_default_expiry_hours", 24)
	v.SetDefault("economy.bounty_max_expiry_hours", 168)
	v.SetDefault("economy.daily_yield_bps", 10)
	v.SetDefault("compliance.join_window", "5m")
	v.SetDefault("compliance.min_posts_per_day", 1)
	v.SetDefault("compliance.min_replies_per_day", 3)
	v.SetDefault("compliance.tick_interval", "60s")
	v.SetDefault("compliance.inactivity_threshold", "4h")
	v.SetDefault("compliance.notice_delay", "30s")
	v.SetDefault("compliance.notice_jitter", "90s")
	v.SetDefault("compliance.sweep_lock_ttl", "55s")
	v.SetDefault("notify.webhook_url", "")
	v.SetDefault("notify.secret", "")
	v.SetDefault("notify.timeout", "10s")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: AEC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("AEC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects combinations the services cannot run with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver)
	}
	if c.Economy.BountyMin <= 0 || c.Economy.BountyMax < c.Economy.BountyMin {
		return fmt.Errorf("economy bounty limits invalid: min=%d max=%d", c.Economy.BountyMin, c.Economy.BountyMax)
	}
	if c.Economy.BountyDefaultExpiryHours < 1 || c.Economy.BountyDefaultExpiryHours > c.Economy.BountyMaxExpiryHours {
		return fmt.Errorf("economy.bounty_default_expiry_hours must be within [1, %d]", c.Economy.BountyMaxExpiryHours)
	}
	if c.Economy.DailyYieldBps < 0 {
		return fmt.Errorf("economy.daily_yield_bps must not be negative")
	}
	if c.Compliance.TickInterval <= 0 {
		return fmt.Errorf("compliance.tick_interval must be positive")
	}
	if c.Compliance.MinPostsPerDay < 0 || c.Compliance.MinRepliesPerDay < 0 {
		return fmt.Errorf("compliance minimums must not be negative")
	}
	return nil
}
