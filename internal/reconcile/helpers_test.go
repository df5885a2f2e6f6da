package reconcile

import (
	"context"
	"sync"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/providers"
)

func intPtr(v int) *int { return &v }

func person(id int, name string) *feeds.Person {
	return &feeds.Person{ID: id, FullName: name}
}

func move(runner int, start, end string) feeds.PlayRunner {
	return feeds.PlayRunner{
		Movement: feeds.RunnerMovement{Start: start, End: end},
		Details:  feeds.RunnerDetails{Runner: feeds.Person{ID: runner}},
	}
}

func outMove(runner int, start string) feeds.PlayRunner {
	mv := move(runner, start, "")
	mv.Movement.IsOut = true
	return mv
}

func play(inning int, half string, moves ...feeds.PlayRunner) feeds.Play {
	return feeds.Play{About: feeds.PlayAbout{Inning: inning, HalfInning: half}, Runners: moves}
}

func player(id int, name, pos string) feeds.BoxscorePlayer {
	return feeds.BoxscorePlayer{
		Person:   feeds.Person{ID: id, FullName: name},
		Position: feeds.Position{Abbreviation: pos},
	}
}

func currentPitcher(id int, name, ip string) feeds.BoxscorePlayer {
	p := player(id, name, "P")
	p.GameStatus.IsCurrentPitcher = true
	p.Stats.Pitching.InningsPitched = ip
	return p
}

func currentBatter(id int, name string) feeds.BoxscorePlayer {
	p := player(id, name, "SS")
	p.GameStatus.IsCurrentBatter = true
	return p
}

func scheduledGame(pk int, abstract, detailed string) feeds.Game {
	return feeds.Game{
		GamePk:   pk,
		GameDate: "2024-07-14T23:05:00Z",
		Status:   feeds.GameStatus{AbstractGameState: abstract, DetailedState: detailed},
		Teams: feeds.GameTeams{
			Home: feeds.GameTeam{Team: feeds.TeamRef{ID: 564, Name: "Jacksonville Jumbo Shrimp"}, Score: intPtr(3)},
			Away: feeds.GameTeam{Team: feeds.TeamRef{ID: 568, Name: "Norfolk Tides"}, Score: intPtr(2)},
		},
		Venue: feeds.Venue{Name: "121 Financial Ballpark"},
	}
}

// stubFeeds serves canned payloads per game and counts calls.
type stubFeeds struct {
	mu       sync.Mutex
	box      map[int]*feeds.Boxscore
	live     map[int]*feeds.LiveFeed
	pbp      map[int]*feeds.PlayByPlay
	failWith error
	panicOn  int
	calls    map[string]int
}

func newStubFeeds() *stubFeeds {
	return &stubFeeds{
		box:   map[int]*feeds.Boxscore{},
		live:  map[int]*feeds.LiveFeed{},
		pbp:   map[int]*feeds.PlayByPlay{},
		calls: map[string]int{},
	}
}

func (s *stubFeeds) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubFeeds) enter(op string, pk int) error {
	s.mu.Lock()
	s.calls[op]++
	s.mu.Unlock()
	if s.panicOn != 0 && s.panicOn == pk {
		panic("corrupt payload")
	}
	return s.failWith
}

func lookup[T any](m map[int]*T, pk int) (*T, error) {
	if v, ok := m[pk]; ok {
		return v, nil
	}
	return nil, providers.ErrNotFound
}

func (s *stubFeeds) FetchBoxscore(_ context.Context, pk int) (*feeds.Boxscore, error) {
	if err := s.enter(providers.OpBoxscore, pk); err != nil {
		return nil, err
	}
	return lookup(s.box, pk)
}

func (s *stubFeeds) FetchLiveFeed(_ context.Context, pk int) (*feeds.LiveFeed, error) {
	if err := s.enter(providers.OpLiveFeed, pk); err != nil {
		return nil, err
	}
	return lookup(s.live, pk)
}

func (s *stubFeeds) FetchPlayByPlay(_ context.Context, pk int) (*feeds.PlayByPlay, error) {
	if err := s.enter(providers.OpPlayByPlay, pk); err != nil {
		return nil, err
	}
	return lookup(s.pbp, pk)
}
