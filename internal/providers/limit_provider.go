package providers

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"mlb-affiliates-service/internal/domain/feeds"
)

const defaultMaxInflight = 16

// limitedProvider caps the number of upstream calls in flight across all requests.
type limitedProvider struct {
	next   DataProvider
	sem    *semaphore.Weighted
	logger *slog.Logger
}

// NewLimitedProvider returns a DataProvider that allows at most maxInflight concurrent upstream calls.
// Calls block until a slot frees up or the context ends.
func NewLimitedProvider(next DataProvider, maxInflight int64, logger *slog.Logger) DataProvider {
	if maxInflight <= 0 {
		maxInflight = defaultMaxInflight
	}
	return &limitedProvider{
		next:   next,
		sem:    semaphore.NewWeighted(maxInflight),
		logger: logger,
	}
}

func (p *limitedProvider) acquire(ctx context.Context, op string) error {
	if p == nil || p.next == nil {
		return ErrProviderUnavailable
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		logWithSource(ctx, p.logger, slog.LevelWarn, op, "upstream slot wait canceled", slog.Any("error", err))
		return err
	}
	return nil
}

func (p *limitedProvider) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	if err := p.acquire(ctx, OpAffiliates); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)
	return p.next.FetchAffiliates(ctx, parentTeamID, season)
}

func (p *limitedProvider) FetchSchedule(ctx context.Context, q ScheduleQuery) ([]feeds.ScheduleDay, error) {
	if err := p.acquire(ctx, OpSchedule); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)
	return p.next.FetchSchedule(ctx, q)
}

func (p *limitedProvider) FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error) {
	if err := p.acquire(ctx, OpBoxscore); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)
	return p.next.FetchBoxscore(ctx, gamePk)
}

func (p *limitedProvider) FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error) {
	if err := p.acquire(ctx, OpLiveFeed); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)
	return p.next.FetchLiveFeed(ctx, gamePk)
}

func (p *limitedProvider) FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error) {
	if err := p.acquire(ctx, OpPlayByPlay); err != nil {
		return nil, err
	}
	defer p.sem.Release(1)
	return p.next.FetchPlayByPlay(ctx, gamePk)
}
