package reconcile

import (
	"strings"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/domain/games"
)

// assembleNotStarted resolves each side's probable pitcher independently:
// boxscore probablePitcher, then the first "P" on the boxscore roster, then
// the schedule entry. Unresolved sides are left out.
func assembleNotStarted(game feeds.Game, box *feeds.Boxscore, unknown string) games.NotStartedDetail {
	d := games.NewNotStartedDetail(unknown)
	if game.GameDate != "" {
		d.GameTime = game.GameDate
	}
	if game.Venue.Name != "" {
		d.Venue = game.Venue.Name
	}

	for _, side := range []string{feeds.SideHome, feeds.SideAway} {
		var pitcher Field[string]
		if box != nil {
			team := box.Teams.Side(side)
			if team.ProbablePitcher.Named() {
				pitcher.Offer(team.ProbablePitcher.FullName, SourceBoxscore)
			}
			if name, ok := firstRosterPitcher(team.Players); ok {
				pitcher.Offer(name, SourceBoxscore)
			}
		}
		if sched := scheduleSide(game, side).ProbablePitcher; sched.Named() {
			pitcher.Offer(sched.FullName, SourceSchedule)
		}
		if name, ok := pitcher.Get(); ok {
			d.ProbablePitchers[side] = name
		}
	}
	return d
}

func firstRosterPitcher(roster feeds.Roster) (string, bool) {
	for _, p := range roster {
		if strings.EqualFold(strings.TrimSpace(p.Position.Abbreviation), "P") && p.Person.FullName != "" {
			return p.Person.FullName, true
		}
	}
	return "", false
}

func scheduleSide(game feeds.Game, side string) feeds.GameTeam {
	if side == feeds.SideAway {
		return game.Teams.Away
	}
	return game.Teams.Home
}

func scheduleScore(game feeds.Game) games.Score {
	return games.Score{Home: game.Teams.Home.ScoreOrZero(), Away: game.Teams.Away.ScoreOrZero()}
}
