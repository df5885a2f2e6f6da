package testutil

import (
	"context"
	"sync"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/providers"
)

var _ providers.DataProvider = (*StubProvider)(nil)

// StubProvider serves canned payloads. Missing game payloads are reported
// as providers.ErrNotFound; Err, when set, fails every call.
type StubProvider struct {
	Records    []feeds.AffiliateRecord
	Days       []feeds.ScheduleDay
	Boxscores  map[int]*feeds.Boxscore
	LiveFeeds  map[int]*feeds.LiveFeed
	PlayByPlay map[int]*feeds.PlayByPlay
	Err        error

	mu    sync.Mutex
	calls map[string]int
}

// Calls reports how many times an operation was invoked.
func (p *StubProvider) Calls(op string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[op]
}

func (p *StubProvider) enter(op string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.calls == nil {
		p.calls = make(map[string]int)
	}
	p.calls[op]++
	return p.Err
}

func (p *StubProvider) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	if err := p.enter(providers.OpAffiliates); err != nil {
		return nil, err
	}
	return p.Records, nil
}

func (p *StubProvider) FetchSchedule(ctx context.Context, q providers.ScheduleQuery) ([]feeds.ScheduleDay, error) {
	if err := p.enter(providers.OpSchedule); err != nil {
		return nil, err
	}
	return p.Days, nil
}

func (p *StubProvider) FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error) {
	if err := p.enter(providers.OpBoxscore); err != nil {
		return nil, err
	}
	return found(p.Boxscores[gamePk])
}

func (p *StubProvider) FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error) {
	if err := p.enter(providers.OpLiveFeed); err != nil {
		return nil, err
	}
	return found(p.LiveFeeds[gamePk])
}

func (p *StubProvider) FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error) {
	if err := p.enter(providers.OpPlayByPlay); err != nil {
		return nil, err
	}
	return found(p.PlayByPlay[gamePk])
}

// RefreshAffiliates lets the stub stand in for a cached provider.
func (p *StubProvider) RefreshAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	return p.FetchAffiliates(ctx, parentTeamID, season)
}

func found[T any](v *T) (*T, error) {
	if v == nil {
		return nil, providers.ErrNotFound
	}
	return v, nil
}
