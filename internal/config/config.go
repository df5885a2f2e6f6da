package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"mlb-affiliates-service/internal/timeutil"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string `envconfig:"PORT" default:"4000"`
	Provider     string `envconfig:"PROVIDER" default:"statsapi"`
	ParentTeamID int    `envconfig:"PARENT_TEAM_ID" default:"146"`
	Timezone     string `envconfig:"TIMEZONE" default:"America/New_York"`

	StatsAPI  StatsAPIConfig
	Reconcile ReconcileConfig
	Cache     CacheConfig
	Poller    PollerConfig
	Metrics   MetricsConfig
	Logging   LoggingConfig
}

// StatsAPIConfig controls how we talk to the MLB Stats API.
type StatsAPIConfig struct {
	BaseURL       string        `envconfig:"STATSAPI_BASE_URL" default:"https://statsapi.mlb.com"`
	Timeout       time.Duration `envconfig:"STATSAPI_TIMEOUT" default:"10s"`
	UserAgent     string        `envconfig:"STATSAPI_USER_AGENT" default:"mlb-affiliates-service"`
	MaxInflight   int64         `envconfig:"UPSTREAM_MAX_INFLIGHT" default:"16"`
	RetryAttempts int           `envconfig:"UPSTREAM_RETRY_ATTEMPTS" default:"1"`
	RetryBackoff  time.Duration `envconfig:"UPSTREAM_RETRY_BACKOFF" default:"200ms"`
}

// ReconcileConfig tunes the per-request fan-out.
type ReconcileConfig struct {
	Concurrency int    `envconfig:"RECONCILE_CONCURRENCY" default:"8"`
	Unknown     string `envconfig:"RECONCILE_UNKNOWN" default:"N/A"`
}

// CacheConfig selects where the affiliate roster is cached.
type CacheConfig struct {
	Backend       string        `envconfig:"CACHE_BACKEND" default:"memory"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"6h"`
	Size          int           `envconfig:"CACHE_SIZE" default:"64"`
	Prefix        string        `envconfig:"CACHE_PREFIX" default:"mlb-affiliates:"`
	RedisURL      string        `envconfig:"REDIS_URL"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// PollerConfig controls the background roster refresh.
type PollerConfig struct {
	Enabled  bool   `envconfig:"POLLER_ENABLED" default:"true"`
	Schedule string `envconfig:"POLLER_SCHEDULE" default:"@every 6h"`
}

// LoggingConfig controls log level, format and optional rotated file output.
type LoggingConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	Format     string `envconfig:"LOG_FORMAT" default:"text"`
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the environment only.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Cache.Backend = strings.ToLower(strings.TrimSpace(cfg.Cache.Backend))
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderStatsAPI, ProviderFixture:
	default:
		errs = append(errs, fmt.Errorf("PROVIDER must be %q or %q, got %q", ProviderStatsAPI, ProviderFixture, c.Provider))
	}
	if c.ParentTeamID <= 0 {
		errs = append(errs, errors.New("PARENT_TEAM_ID must be positive"))
	}
	if timeutil.LoadLocation(c.Timezone) == nil {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a known zone", c.Timezone))
	}
	if c.StatsAPI.Timeout <= 0 {
		errs = append(errs, errors.New("STATSAPI_TIMEOUT must be positive"))
	}
	if c.StatsAPI.MaxInflight <= 0 {
		errs = append(errs, errors.New("UPSTREAM_MAX_INFLIGHT must be positive"))
	}
	if c.StatsAPI.RetryAttempts < 1 {
		errs = append(errs, errors.New("UPSTREAM_RETRY_ATTEMPTS must be at least 1"))
	}
	if c.Reconcile.Concurrency <= 0 {
		errs = append(errs, errors.New("RECONCILE_CONCURRENCY must be positive"))
	}
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND must be %q or %q, got %q", CacheMemory, CacheRedis, c.Cache.Backend))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("CACHE_TTL must be positive"))
	}
	if c.Poller.Enabled && strings.TrimSpace(c.Poller.Schedule) == "" {
		errs = append(errs, errors.New("POLLER_SCHEDULE is required when the poller is enabled"))
	}
	return errors.Join(errs...)
}

// Location is the zone used when a request names none.
func (c Config) Location() *time.Location {
	if loc := timeutil.LoadLocation(c.Timezone); loc != nil {
		return loc
	}
	return time.UTC
}
