package games

import (
	"strings"

	"mlb-affiliates-service/internal/domain/affiliates"
	"mlb-affiliates-service/internal/domain/feeds"
)

// ParentClubFunc derives an opponent's parent club from its display name.
type ParentClubFunc func(name string) string

// LastTokenParentClub takes the final whitespace token of a multi-word name.
// Multi-word franchise names ("Red Sox") come out wrong; callers can inject a better func.
func LastTokenParentClub(name string) string {
	if !strings.Contains(name, " ") {
		return name
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}

// Opponent is the other side of a classified game.
type Opponent struct {
	TeamID     int
	Name       string
	ParentClub string
}

// ClassifiedGame is a schedule entry attributed to one tracked team.
type ClassifiedGame struct {
	TeamID   int
	Game     feeds.Game
	State    GameState
	Opponent Opponent
	IsHome   bool
}

// Classifier attributes schedule entries to tracked teams.
type Classifier struct {
	parentClub ParentClubFunc
}

// NewClassifier builds a Classifier. A nil func uses LastTokenParentClub.
func NewClassifier(parentClub ParentClubFunc) *Classifier {
	if parentClub == nil {
		parentClub = LastTokenParentClub
	}
	return &Classifier{parentClub: parentClub}
}

// Classify flattens the days in order and keeps games involving a tracked team.
// The home side is checked first, so a game between two tracked teams is
// attributed to the home team only.
func (c *Classifier) Classify(days []feeds.ScheduleDay, tracked affiliates.TrackedSet) []ClassifiedGame {
	var out []ClassifiedGame
	for _, day := range days {
		for _, g := range day.Games {
			home, away := g.Teams.Home.Team, g.Teams.Away.Team
			var (
				teamID int
				opp    feeds.TeamRef
				isHome bool
			)
			switch {
			case tracked.Contains(home.ID):
				teamID, opp, isHome = home.ID, away, true
			case tracked.Contains(away.ID):
				teamID, opp = away.ID, home
			default:
				continue
			}
			out = append(out, ClassifiedGame{
				TeamID: teamID,
				Game:   g,
				State:  StateFromAbstract(g.Status.AbstractGameState),
				Opponent: Opponent{
					TeamID:     opp.ID,
					Name:       opp.Name,
					ParentClub: c.parentClub(opp.Name),
				},
				IsHome: isHome,
			})
		}
	}
	return out
}
