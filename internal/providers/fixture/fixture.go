// Package fixture serves a fixed Marlins organization and one day of games
// covering every lifecycle state, for local runs and tests.
package fixture

import (
	"context"
	"time"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/providers"
	"mlb-affiliates-service/internal/timeutil"
)

// ParentTeamID is the only organization the fixture knows.
const ParentTeamID = 146

// Game ids served by the fixture.
const (
	GamePreview      = 745001
	GameLive         = 745002
	GameFinal        = 745003
	GameLiveNoFeed   = 745004
	GamePostponed    = 745005
	firstPitchOffset = 23 * time.Hour
)

var _ providers.DataProvider = (*Provider)(nil)

// Provider returns static payloads. Schedule dates follow the query.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{now: time.Now}
}

// FetchAffiliates returns the Marlins organization for any season.
func (p *Provider) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	_ = ctx
	_ = season
	if parentTeamID != ParentTeamID {
		return nil, providers.ErrNotFound
	}
	return []feeds.AffiliateRecord{
		{ID: 146, Name: "Miami Marlins", Sport: feeds.Sport{ID: 1, Name: "Major League Baseball", Abbreviation: "MLB"}},
		{ID: 564, Name: "Jacksonville Jumbo Shrimp", Sport: feeds.Sport{ID: 11, Name: "Triple-A", Abbreviation: "AAA"}},
		{ID: 4124, Name: "Pensacola Blue Wahoos", Sport: feeds.Sport{ID: 12, Name: "Double-A", Abbreviation: "AA"}},
		{ID: 554, Name: "Beloit Sky Carp", Sport: feeds.Sport{ID: 13, Name: "High-A", Abbreviation: "A+"}},
		{ID: 479, Name: "Jupiter Hammerheads", Sport: feeds.Sport{ID: 14, Name: "Single-A", Abbreviation: "A"}},
		{ID: 467, Name: "FCL Marlins", Sport: feeds.Sport{ID: 16, Name: "Rookie", Abbreviation: "ROK"}},
	}, nil
}

// FetchSchedule returns the fixture games involving any of q.TeamIDs on q.Date.
func (p *Provider) FetchSchedule(ctx context.Context, q providers.ScheduleQuery) ([]feeds.ScheduleDay, error) {
	_ = ctx
	day, err := timeutil.ParseDate(q.Date, time.UTC)
	if err != nil {
		day = timeutil.Today(p.now(), time.UTC)
	}
	wanted := make(map[int]bool, len(q.TeamIDs))
	for _, id := range q.TeamIDs {
		wanted[id] = true
	}

	var out []feeds.Game
	for _, g := range scheduleGames(day.Add(firstPitchOffset)) {
		if len(wanted) == 0 || wanted[g.Teams.Home.Team.ID] || wanted[g.Teams.Away.Team.ID] {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return []feeds.ScheduleDay{{Date: timeutil.FormatDate(day), Games: out}}, nil
}

// FetchBoxscore returns the boxscore of a fixture game.
func (p *Provider) FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error) {
	_ = ctx
	if b := boxscores()[gamePk]; b != nil {
		return b, nil
	}
	return nil, providers.ErrNotFound
}

// FetchLiveFeed returns the live feed of a fixture game.
func (p *Provider) FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error) {
	_ = ctx
	if gamePk != GameLive {
		return nil, providers.ErrNotFound
	}
	return &feeds.LiveFeed{
		GamePk:   GameLive,
		GameData: feeds.LiveGameData{Status: feeds.GameStatus{AbstractGameState: "Live", DetailedState: "In Progress"}},
		LiveData: feeds.LiveData{Linescore: &feeds.Linescore{
			CurrentInning: intPtr(5),
			InningHalf:    "Top",
			Outs:          intPtr(2),
			Offense: feeds.LinescoreOffense{
				Batter: person(691781, "Jacob Berry"),
				Second: person(681624, "Troy Johnston"),
			},
			Defense: feeds.LinescoreDefense{Pitcher: person(669432, "Trevor Kuncl")},
		}},
	}, nil
}

// FetchPlayByPlay returns the plays of a fixture game.
func (p *Provider) FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error) {
	_ = ctx
	if gamePk != GameLiveNoFeed {
		return nil, providers.ErrNotFound
	}
	return &feeds.PlayByPlay{AllPlays: []feeds.Play{
		playOf(0, 3, "bottom", runner(701350, "", "1B")),
		playOf(1, 3, "bottom", runner(701350, "1B", "score"), runner(702616, "", "score")),
		playOf(2, 4, "top", runner(680869, "", "2B")),
		playOf(3, 4, "top", outRunner(680869, "2B")),
		playOf(4, 4, "bottom", runner(702616, "", "1B")),
		playOf(5, 4, "bottom", runner(702616, "1B", "2B"), runner(701350, "", "1B")),
	}}, nil
}

func scheduleGames(firstPitch time.Time) []feeds.Game {
	at := func(offset time.Duration) string { return firstPitch.Add(offset).UTC().Format(time.RFC3339) }
	return []feeds.Game{
		{
			GamePk:   GamePreview,
			GameDate: at(0),
			Status:   feeds.GameStatus{AbstractGameState: "Preview", DetailedState: "Scheduled"},
			Teams: feeds.GameTeams{
				Home: feeds.GameTeam{Team: feeds.TeamRef{ID: 146, Name: "Miami Marlins"}, ProbablePitcher: person(677944, "Eury Perez")},
				Away: feeds.GameTeam{Team: feeds.TeamRef{ID: 121, Name: "New York Mets"}, ProbablePitcher: person(605400, "Kodai Senga")},
			},
			Venue: feeds.Venue{ID: 4169, Name: "loanDepot park"},
		},
		{
			GamePk:   GameLive,
			GameDate: at(-3 * time.Hour),
			Status:   feeds.GameStatus{AbstractGameState: "Live", DetailedState: "In Progress"},
			Teams: feeds.GameTeams{
				Home: feeds.GameTeam{Team: feeds.TeamRef{ID: 568, Name: "Norfolk Tides"}, Score: intPtr(3)},
				Away: feeds.GameTeam{Team: feeds.TeamRef{ID: 564, Name: "Jacksonville Jumbo Shrimp"}, Score: intPtr(2)},
			},
			Venue: feeds.Venue{ID: 2520, Name: "Harbor Park"},
		},
		{
			GamePk:   GameFinal,
			GameDate: at(-8 * time.Hour),
			Status:   feeds.GameStatus{AbstractGameState: "Final", DetailedState: "Final"},
			Teams: feeds.GameTeams{
				Home: feeds.GameTeam{Team: feeds.TeamRef{ID: 4124, Name: "Pensacola Blue Wahoos"}, Score: intPtr(5)},
				Away: feeds.GameTeam{Team: feeds.TeamRef{ID: 5015, Name: "Biloxi Shuckers"}, Score: intPtr(4)},
			},
			Venue: feeds.Venue{ID: 4329, Name: "Blue Wahoos Stadium"},
		},
		{
			GamePk:   GameLiveNoFeed,
			GameDate: at(-2 * time.Hour),
			Status:   feeds.GameStatus{AbstractGameState: "Live", DetailedState: "In Progress"},
			Teams: feeds.GameTeams{
				Home: feeds.GameTeam{Team: feeds.TeamRef{ID: 554, Name: "Beloit Sky Carp"}, Score: intPtr(1)},
				Away: feeds.GameTeam{Team: feeds.TeamRef{ID: 460, Name: "Wisconsin Timber Rattlers"}, Score: intPtr(0)},
			},
			Venue: feeds.Venue{ID: 5480, Name: "ABC Supply Stadium"},
		},
		{
			GamePk:   GamePostponed,
			GameDate: at(-4 * time.Hour),
			Status:   feeds.GameStatus{AbstractGameState: "Other", DetailedState: "Postponed"},
			Teams: feeds.GameTeams{
				Home: feeds.GameTeam{Team: feeds.TeamRef{ID: 479, Name: "Jupiter Hammerheads"}},
				Away: feeds.GameTeam{Team: feeds.TeamRef{ID: 2127, Name: "Palm Beach Cardinals"}},
			},
			Venue: feeds.Venue{ID: 2508, Name: "Roger Dean Chevrolet Stadium"},
		},
	}
}

func boxscores() map[int]*feeds.Boxscore {
	return map[int]*feeds.Boxscore{
		GamePreview: {Teams: feeds.BoxscoreTeams{
			Home: feeds.BoxscoreTeam{Team: feeds.TeamRef{ID: 146, Name: "Miami Marlins"}},
			Away: feeds.BoxscoreTeam{
				Team:    feeds.TeamRef{ID: 121, Name: "New York Mets"},
				Players: feeds.Roster{rosterPlayer(605400, "Kodai Senga", "P")},
			},
		}},
		GameLive: {Teams: feeds.BoxscoreTeams{
			Home: feeds.BoxscoreTeam{
				Team:     feeds.TeamRef{ID: 568, Name: "Norfolk Tides"},
				Pitchers: []int{669432},
				Players:  feeds.Roster{current(rosterPlayer(669432, "Trevor Kuncl", "P"), false, true, "4.2")},
			},
			Away: feeds.BoxscoreTeam{
				Team:    feeds.TeamRef{ID: 564, Name: "Jacksonville Jumbo Shrimp"},
				Batters: []int{691781, 681624},
				Players: feeds.Roster{
					rosterPlayer(681624, "Troy Johnston", "1B"),
					current(rosterPlayer(691781, "Jacob Berry", "3B"), true, false, ""),
				},
			},
		}},
		GameFinal: {Teams: feeds.BoxscoreTeams{
			Home: feeds.BoxscoreTeam{
				Team:     feeds.TeamRef{ID: 4124, Name: "Pensacola Blue Wahoos"},
				Pitchers: []int{694362, 687350},
				Players: feeds.Roster{
					decided(rosterPlayer(694362, "Robby Snelling", "P"), 1, 0, 0),
					decided(rosterPlayer(687350, "Josh White", "P"), 0, 0, 1),
				},
			},
			Away: feeds.BoxscoreTeam{
				Team:     feeds.TeamRef{ID: 5015, Name: "Biloxi Shuckers"},
				Pitchers: []int{690993},
				Players:  feeds.Roster{decided(rosterPlayer(690993, "Logan Henderson", "P"), 0, 1, 0)},
			},
		}},
		GameLiveNoFeed: {
			Teams: feeds.BoxscoreTeams{
				Home: feeds.BoxscoreTeam{
					Team:    feeds.TeamRef{ID: 554, Name: "Beloit Sky Carp"},
					Players: feeds.Roster{current(rosterPlayer(703551, "Torin Montgomery", "1B"), true, false, "")},
					Info: []feeds.InfoSection{{Title: "BATTING", FieldList: []feeds.InfoItem{
						{Label: "Team LOB", Value: "4"},
					}}},
				},
				Away: feeds.BoxscoreTeam{
					Team:    feeds.TeamRef{ID: 460, Name: "Wisconsin Timber Rattlers"},
					Players: feeds.Roster{current(rosterPlayer(680869, "Tyson Hardin", "P"), false, true, "3.1")},
				},
			},
		},
	}
}

func intPtr(v int) *int { return &v }

func person(id int, name string) *feeds.Person {
	return &feeds.Person{ID: id, FullName: name}
}

func rosterPlayer(id int, name, pos string) feeds.BoxscorePlayer {
	return feeds.BoxscorePlayer{
		Person:   feeds.Person{ID: id, FullName: name},
		Position: feeds.Position{Abbreviation: pos},
	}
}

func current(p feeds.BoxscorePlayer, batter, pitcher bool, ip string) feeds.BoxscorePlayer {
	p.GameStatus.IsCurrentBatter = batter
	p.GameStatus.IsCurrentPitcher = pitcher
	p.Stats.Pitching.InningsPitched = ip
	return p
}

func decided(p feeds.BoxscorePlayer, wins, losses, saves int) feeds.BoxscorePlayer {
	p.Stats.Pitching.Wins = wins
	p.Stats.Pitching.Losses = losses
	p.Stats.Pitching.Saves = saves
	return p
}

func playOf(index, inning int, half string, runners ...feeds.PlayRunner) feeds.Play {
	return feeds.Play{
		About:   feeds.PlayAbout{AtBatIndex: index, Inning: inning, HalfInning: half, IsTopInning: half == "top"},
		Runners: runners,
	}
}

func runner(id int, start, end string) feeds.PlayRunner {
	return feeds.PlayRunner{
		Movement: feeds.RunnerMovement{Start: start, End: end},
		Details:  feeds.RunnerDetails{Runner: feeds.Person{ID: id}},
	}
}

func outRunner(id int, start string) feeds.PlayRunner {
	r := runner(id, start, "")
	r.Movement.IsOut = true
	return r
}
