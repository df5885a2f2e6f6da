package games

import "mlb-affiliates-service/internal/domain/affiliates"

// Reconciled pairs a classified game with its detail.
type Reconciled struct {
	Classified ClassifiedGame
	Detail     Detail
}

// Assemble builds the view. Every tracked team starts empty; results are
// applied in order, so the later game of a doubleheader wins. Results for
// untracked teams are ignored.
func Assemble(tracked affiliates.TrackedSet, results []Reconciled) ScheduleView {
	view := make(ScheduleView, len(tracked))
	for id := range tracked {
		view[id] = TeamEntry{}
	}
	for _, r := range results {
		team, ok := tracked.Get(r.Classified.TeamID)
		if !ok {
			continue
		}
		detail := r.Detail
		if detail == nil {
			detail = OtherDetail{}
		}
		view[team.TeamID] = TeamEntry{Game: &GameView{
			TeamName:           team.DisplayName,
			Level:              team.Level,
			OpponentName:       r.Classified.Opponent.Name,
			OpponentParentClub: r.Classified.Opponent.ParentClub,
			GameState:          r.Classified.State,
			Details:            detail,
		}}
	}
	return view
}
