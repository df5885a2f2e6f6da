package server

import (
	"log/slog"

	"mlb-affiliates-service/internal/cache"
	"mlb-affiliates-service/internal/config"
	"mlb-affiliates-service/internal/metrics"
	"mlb-affiliates-service/internal/providers"
)

// providerFactory assembles the upstream chain: inflight limit, retry, roster cache.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config, c cache.Cache) *providers.CachedProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger), c)
}

func (f providerFactory) wrap(cfg config.Config, base providers.DataProvider, c cache.Cache) *providers.CachedProvider {
	limited := providers.NewLimitedProvider(base, cfg.StatsAPI.MaxInflight, f.logger)
	retrying := providers.NewRetryingProvider(
		limited,
		f.logger,
		f.metrics,
		normalizeProviderName(cfg.Provider, base),
		cfg.StatsAPI.RetryAttempts,
		cfg.StatsAPI.RetryBackoff,
	)
	return providers.NewCachedProvider(retrying, c, cfg.Cache.TTL, f.logger)
}
