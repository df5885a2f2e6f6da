package reconcile

import (
	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/domain/games"
)

// assembleCompleted reads the pitchers of record from the boxscore, then from
// the decisions embedded in the schedule entry. Scores come from the schedule.
func assembleCompleted(game feeds.Game, box *feeds.Boxscore, unknown string) games.CompletedDetail {
	d := games.NewCompletedDetail(unknown)
	d.FinalScore = scheduleScore(game)

	var win, loss, save Field[string]
	if box != nil {
		ids := make([]int, 0, len(box.Teams.Home.Pitchers)+len(box.Teams.Away.Pitchers))
		ids = append(ids, box.Teams.Home.Pitchers...)
		ids = append(ids, box.Teams.Away.Pitchers...)
		for _, id := range ids {
			p, ok := box.Teams.Home.Players.Find(id)
			if !ok {
				p, ok = box.Teams.Away.Players.Find(id)
			}
			if !ok || p.Person.FullName == "" {
				continue
			}
			stats := p.Stats.Pitching
			if stats.Wins > 0 {
				win.Offer(p.Person.FullName, SourceBoxscore)
			}
			if stats.Losses > 0 {
				loss.Offer(p.Person.FullName, SourceBoxscore)
			}
			if stats.Saves > 0 {
				save.Offer(p.Person.FullName, SourceBoxscore)
			}
		}
	}

	if dec := game.Decisions; dec != nil {
		if dec.Winner.Named() {
			win.Offer(dec.Winner.FullName, SourceSchedule)
		}
		if dec.Loser.Named() {
			loss.Offer(dec.Loser.FullName, SourceSchedule)
		}
		if dec.Save.Named() {
			save.Offer(dec.Save.FullName, SourceSchedule)
		}
	}

	d.WinningPitcher = win.Or(unknown)
	d.LosingPitcher = loss.Or(unknown)
	d.SavePitcher = save.Or(unknown)
	return d
}
