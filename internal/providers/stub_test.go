package providers

import (
	"context"
	"sync"

	"mlb-affiliates-service/internal/domain/feeds"
)

// scriptedProvider returns queued errors before succeeding.
type scriptedProvider struct {
	mu      sync.Mutex
	errs    []error
	calls   map[string]int
	roster  []feeds.AffiliateRecord
	onEnter func()
	onExit  func()
}

func newScriptedProvider(errs ...error) *scriptedProvider {
	return &scriptedProvider{
		errs:   errs,
		calls:  map[string]int{},
		roster: []feeds.AffiliateRecord{{ID: 146, Name: "Miami Marlins", Sport: feeds.Sport{ID: 1, Name: "Major League Baseball"}}},
	}
}

func (s *scriptedProvider) next(op string) error {
	if s.onEnter != nil {
		s.onEnter()
	}
	if s.onExit != nil {
		defer s.onExit()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	if len(s.errs) == 0 {
		return nil
	}
	err := s.errs[0]
	s.errs = s.errs[1:]
	return err
}

func (s *scriptedProvider) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *scriptedProvider) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	if err := s.next(OpAffiliates); err != nil {
		return nil, err
	}
	return s.roster, nil
}

func (s *scriptedProvider) FetchSchedule(ctx context.Context, q ScheduleQuery) ([]feeds.ScheduleDay, error) {
	if err := s.next(OpSchedule); err != nil {
		return nil, err
	}
	return []feeds.ScheduleDay{{Date: q.Date}}, nil
}

func (s *scriptedProvider) FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error) {
	if err := s.next(OpBoxscore); err != nil {
		return nil, err
	}
	return &feeds.Boxscore{}, nil
}

func (s *scriptedProvider) FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error) {
	if err := s.next(OpLiveFeed); err != nil {
		return nil, err
	}
	return &feeds.LiveFeed{GamePk: gamePk}, nil
}

func (s *scriptedProvider) FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error) {
	if err := s.next(OpPlayByPlay); err != nil {
		return nil, err
	}
	return &feeds.PlayByPlay{}, nil
}
