package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, ProviderStatsAPI, cfg.Provider)
	assert.Equal(t, 146, cfg.ParentTeamID)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, "https://statsapi.mlb.com", cfg.StatsAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.StatsAPI.Timeout)
	assert.Equal(t, int64(16), cfg.StatsAPI.MaxInflight)
	assert.Equal(t, 1, cfg.StatsAPI.RetryAttempts)
	assert.Equal(t, 8, cfg.Reconcile.Concurrency)
	assert.Equal(t, "N/A", cfg.Reconcile.Unknown)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Poller.Enabled)
	assert.Equal(t, "@every 6h", cfg.Poller.Schedule)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "9090", cfg.Metrics.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "America/New_York", cfg.Location().String())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("PROVIDER", " Fixture ")
	t.Setenv("PARENT_TEAM_ID", "147")
	t.Setenv("TIMEZONE", "America/Chicago")
	t.Setenv("STATSAPI_BASE_URL", "http://example.com")
	t.Setenv("UPSTREAM_RETRY_ATTEMPTS", "3")
	t.Setenv("UPSTREAM_RETRY_BACKOFF", "1s")
	t.Setenv("RECONCILE_CONCURRENCY", "2")
	t.Setenv("CACHE_BACKEND", "REDIS")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("POLLER_ENABLED", "false")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, ProviderFixture, cfg.Provider)
	assert.Equal(t, 147, cfg.ParentTeamID)
	assert.Equal(t, "http://example.com", cfg.StatsAPI.BaseURL)
	assert.Equal(t, 3, cfg.StatsAPI.RetryAttempts)
	assert.Equal(t, time.Second, cfg.StatsAPI.RetryBackoff)
	assert.Equal(t, 2, cfg.Reconcile.Concurrency)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis://localhost:6379/2", cfg.Cache.RedisURL)
	assert.False(t, cfg.Poller.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestFromEnvRejectsUnparsableValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "not-a-duration")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	cfg.Provider = "espn"
	cfg.Timezone = "Mars/Olympus"
	cfg.Reconcile.Concurrency = 0
	cfg.Cache.Backend = "memcached"
	cfg.Poller.Schedule = " "

	err = cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"PROVIDER", "TIMEZONE", "RECONCILE_CONCURRENCY", "CACHE_BACKEND", "POLLER_SCHEDULE"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PARENT_TEAM_ID=121\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		_ = os.Unsetenv("PARENT_TEAM_ID")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 121, cfg.ParentTeamID)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, Config{Timezone: "nowhere"}.Location())
}
