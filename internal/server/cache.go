package server

import (
	"context"
	"log/slog"

	"mlb-affiliates-service/internal/cache"
	"mlb-affiliates-service/internal/config"
)

var redisConnect = func(ctx context.Context, cfg cache.RedisConfig) (cache.Cache, error) {
	return cache.NewRedis(ctx, cfg)
}

// buildCache returns the configured roster cache. An unreachable Redis falls back to memory.
func buildCache(ctx context.Context, cfg config.Config, logger *slog.Logger) cache.Cache {
	if cfg.Cache.Backend != config.CacheRedis {
		return cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
	}
	c, err := redisConnect(ctx, cache.RedisConfig{
		URL:      cfg.Cache.RedisURL,
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
		Prefix:   cfg.Cache.Prefix,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("redis cache unavailable, using memory", "err", err)
		}
		return cache.NewMemory(cfg.Cache.Size, cfg.Cache.TTL)
	}
	return c
}
