package games

import (
	"encoding/json"
	"strconv"
)

// GameState is the canonical lifecycle state of a game.
type GameState string

const (
	StateNotStarted GameState = "NotStarted"
	StateInProgress GameState = "InProgress"
	StateCompleted  GameState = "Completed"
)

// StateFromAbstract maps the upstream abstract state. Unknown codes pass through unchanged.
func StateFromAbstract(raw string) GameState {
	switch raw {
	case "Preview":
		return StateNotStarted
	case "Live":
		return StateInProgress
	case "Final":
		return StateCompleted
	default:
		return GameState(raw)
	}
}

// Known reports whether the state is one of the three reconciled states.
func (s GameState) Known() bool {
	return s == StateNotStarted || s == StateInProgress || s == StateCompleted
}

// Detail is the state-specific part of a GameView.
type Detail interface {
	detail()
}

// Score is a home/away score pair.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// NotStartedDetail describes a game that has not begun.
type NotStartedDetail struct {
	GameTime         string            `json:"game_time"`
	Venue            string            `json:"venue"`
	ProbablePitchers map[string]string `json:"probable_pitchers"`
}

// InProgressDetail describes a game being played.
type InProgressDetail struct {
	Venue          string   `json:"venue"`
	Score          Score    `json:"score"`
	Inning         string   `json:"inning"`
	Outs           string   `json:"outs"`
	RunnersOnBase  []string `json:"runners_on_base"`
	CurrentPitcher string   `json:"current_pitcher"`
	Batter         string   `json:"batter"`
}

// CompletedDetail describes a finished game.
type CompletedDetail struct {
	FinalScore     Score  `json:"final_score"`
	WinningPitcher string `json:"winning_pitcher"`
	LosingPitcher  string `json:"losing_pitcher"`
	SavePitcher    string `json:"save_pitcher"`
}

// OtherDetail is the empty detail carried by states outside the three known ones.
type OtherDetail struct{}

func (NotStartedDetail) detail() {}
func (InProgressDetail) detail() {}
func (CompletedDetail) detail()  {}
func (OtherDetail) detail()      {}

// NewNotStartedDetail returns the defaulted variant.
func NewNotStartedDetail(unknown string) NotStartedDetail {
	return NotStartedDetail{GameTime: unknown, Venue: unknown, ProbablePitchers: map[string]string{}}
}

// NewInProgressDetail returns the defaulted variant.
func NewInProgressDetail(unknown string) InProgressDetail {
	return InProgressDetail{
		Venue:          unknown,
		Inning:         unknown,
		Outs:           unknown,
		RunnersOnBase:  []string{},
		CurrentPitcher: unknown,
		Batter:         unknown,
	}
}

// NewCompletedDetail returns the defaulted variant.
func NewCompletedDetail(unknown string) CompletedDetail {
	return CompletedDetail{WinningPitcher: unknown, LosingPitcher: unknown, SavePitcher: unknown}
}

// DefaultDetail returns the defaulted variant matching the state.
func DefaultDetail(state GameState, unknown string) Detail {
	switch state {
	case StateNotStarted:
		return NewNotStartedDetail(unknown)
	case StateInProgress:
		return NewInProgressDetail(unknown)
	case StateCompleted:
		return NewCompletedDetail(unknown)
	default:
		return OtherDetail{}
	}
}

// GameView is the per-team record of an active game.
type GameView struct {
	TeamName           string    `json:"team_name"`
	Level              string    `json:"level"`
	OpponentName       string    `json:"opponent_name"`
	OpponentParentClub string    `json:"opponent_mlb_parent"`
	GameState          GameState `json:"game_state"`
	Details            Detail    `json:"details"`
}

// TeamEntry is either a game or the empty record.
type TeamEntry struct {
	Game *GameView
}

// Empty reports whether the team has no game.
func (e TeamEntry) Empty() bool { return e.Game == nil }

// MarshalJSON writes {} for a team without a game.
func (e TeamEntry) MarshalJSON() ([]byte, error) {
	if e.Game == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e.Game)
}

// ScheduleView maps every tracked team id to its entry.
type ScheduleView map[int]TeamEntry

// MarshalJSON writes team ids as string keys.
func (v ScheduleView) MarshalJSON() ([]byte, error) {
	out := make(map[string]TeamEntry, len(v))
	for id, entry := range v {
		out[strconv.Itoa(id)] = entry
	}
	return json.Marshal(out)
}
