package server

import (
	"log/slog"

	"mlb-affiliates-service/internal/config"
	"mlb-affiliates-service/internal/providers"
	"mlb-affiliates-service/internal/providers/fixture"
	"mlb-affiliates-service/internal/providers/statsapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.DataProvider {
	switch cfg.Provider {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderStatsAPI, "":
		return statsapi.NewClient(statsapi.Config{
			BaseURL:   cfg.StatsAPI.BaseURL,
			Timeout:   cfg.StatsAPI.Timeout,
			UserAgent: cfg.StatsAPI.UserAgent,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
