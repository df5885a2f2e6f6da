package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mlb-affiliates-service/internal/cache"
	"mlb-affiliates-service/internal/domain/feeds"
)

const defaultRosterTTL = 6 * time.Hour

// CachedProvider serves the affiliate roster from a cache and passes every
// other call through. Cache failures fall back to the wrapped provider.
type CachedProvider struct {
	DataProvider
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedProvider wraps next with a roster cache.
func NewCachedProvider(next DataProvider, c cache.Cache, ttl time.Duration, logger *slog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = defaultRosterTTL
	}
	return &CachedProvider{DataProvider: next, cache: c, ttl: ttl, logger: logger}
}

func rosterKey(parentTeamID, season int) string {
	return fmt.Sprintf("affiliates:%d:%d", parentTeamID, season)
}

// FetchAffiliates returns the cached roster when present.
func (p *CachedProvider) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	if p.DataProvider == nil {
		return nil, ErrProviderUnavailable
	}
	if p.cache != nil {
		raw, err := p.cache.Get(ctx, rosterKey(parentTeamID, season))
		switch {
		case err == nil:
			var records []feeds.AffiliateRecord
			if jsonErr := json.Unmarshal(raw, &records); jsonErr == nil {
				return records, nil
			} else {
				logWithSource(ctx, p.logger, slog.LevelWarn, OpAffiliates, "discarding unreadable cached roster", slog.Any("error", jsonErr))
			}
		case !errors.Is(err, cache.ErrMiss):
			logWithSource(ctx, p.logger, slog.LevelWarn, OpAffiliates, "roster cache read failed", slog.Any("error", err))
		}
	}
	return p.RefreshAffiliates(ctx, parentTeamID, season)
}

// RefreshAffiliates fetches the roster from upstream and stores it.
func (p *CachedProvider) RefreshAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	if p.DataProvider == nil {
		return nil, ErrProviderUnavailable
	}
	records, err := p.DataProvider.FetchAffiliates(ctx, parentTeamID, season)
	if err != nil {
		return nil, err
	}
	if p.cache == nil || len(records) == 0 {
		return records, nil
	}
	raw, err := json.Marshal(records)
	if err == nil {
		err = p.cache.Set(ctx, rosterKey(parentTeamID, season), raw, p.ttl)
	}
	if err != nil {
		logWithSource(ctx, p.logger, slog.LevelWarn, OpAffiliates, "roster cache write failed", slog.Any("error", err))
	}
	return records, nil
}
