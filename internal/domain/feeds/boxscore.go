package feeds

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Boxscore is the per-game boxscore payload.
type Boxscore struct {
	Teams BoxscoreTeams `json:"teams"`
	Info  []InfoItem    `json:"info,omitempty"`
}

// BoxscoreTeams holds both sides of a boxscore.
type BoxscoreTeams struct {
	Home BoxscoreTeam `json:"home"`
	Away BoxscoreTeam `json:"away"`
}

// Side returns the team for "home" or "away".
func (t BoxscoreTeams) Side(side string) BoxscoreTeam {
	if side == SideAway {
		return t.Away
	}
	return t.Home
}

// Side names used across payloads.
const (
	SideHome = "home"
	SideAway = "away"
)

// BoxscoreTeam is one side of a boxscore.
type BoxscoreTeam struct {
	Team            TeamRef       `json:"team"`
	Players         Roster        `json:"players"`
	Pitchers        []int         `json:"pitchers,omitempty"`
	Batters         []int         `json:"batters,omitempty"`
	ProbablePitcher *Person       `json:"probablePitcher,omitempty"`
	Info            []InfoSection `json:"info,omitempty"`
}

// InfoSection is a titled group of summary lines ("BATTING", "FIELDING").
type InfoSection struct {
	Title     string     `json:"title"`
	FieldList []InfoItem `json:"fieldList"`
}

// InfoItem is a single label/value summary line.
type InfoItem struct {
	Label string `json:"label"`
	Value string `json:"value,omitempty"`
}

// BoxscorePlayer is one roster entry.
type BoxscorePlayer struct {
	Person     Person           `json:"person"`
	Position   Position         `json:"position"`
	GameStatus PlayerGameStatus `json:"gameStatus"`
	Stats      PlayerStats      `json:"stats"`
}

// Position is a roster position.
type Position struct {
	Code         string `json:"code,omitempty"`
	Name         string `json:"name,omitempty"`
	Abbreviation string `json:"abbreviation"`
}

// PlayerGameStatus flags the player's role at this moment of the game.
type PlayerGameStatus struct {
	IsCurrentBatter  bool `json:"isCurrentBatter"`
	IsCurrentPitcher bool `json:"isCurrentPitcher"`
	IsOnBench        bool `json:"isOnBench,omitempty"`
}

// PlayerStats holds the per-game stat blocks used by the reconciler.
type PlayerStats struct {
	Pitching PitchingStats `json:"pitching"`
}

// PitchingStats is the per-game pitching line.
type PitchingStats struct {
	InningsPitched string `json:"inningsPitched,omitempty"`
	Wins           int    `json:"wins,omitempty"`
	Losses         int    `json:"losses,omitempty"`
	Saves          int    `json:"saves,omitempty"`
}

// Roster keeps boxscore players in the order the upstream listed them.
// The upstream encodes players as an object keyed by "ID<personId>".
type Roster []BoxscorePlayer

// Find returns the player with the given person id.
func (r Roster) Find(id int) (BoxscorePlayer, bool) {
	for _, p := range r {
		if p.Person.ID == id {
			return p, true
		}
	}
	return BoxscorePlayer{}, false
}

// UnmarshalJSON decodes the keyed object while preserving key order.
func (r *Roster) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("roster: expected object, got %v", tok)
	}
	players := make([]BoxscorePlayer, 0)
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return err
		}
		var p BoxscorePlayer
		if err := dec.Decode(&p); err != nil {
			return err
		}
		players = append(players, p)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = players
	return nil
}

// MarshalJSON writes the roster back in the upstream keyed form.
func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fmt.Sprintf("ID%d", p.Person.ID))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
