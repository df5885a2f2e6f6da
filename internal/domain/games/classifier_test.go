package games

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlb-affiliates-service/internal/domain/affiliates"
	"mlb-affiliates-service/internal/domain/feeds"
)

func game(pk, homeID int, homeName string, awayID int, awayName, abstract string) feeds.Game {
	return feeds.Game{
		GamePk: pk,
		Status: feeds.GameStatus{AbstractGameState: abstract},
		Teams: feeds.GameTeams{
			Home: feeds.GameTeam{Team: feeds.TeamRef{ID: homeID, Name: homeName}},
			Away: feeds.GameTeam{Team: feeds.TeamRef{ID: awayID, Name: awayName}},
		},
	}
}

func tracked(ids ...int) affiliates.TrackedSet {
	set := affiliates.TrackedSet{}
	for _, id := range ids {
		set[id] = affiliates.Affiliate{TeamID: id, DisplayName: "Team", Level: "AAA"}
	}
	return set
}

func TestLastTokenParentClub(t *testing.T) {
	assert.Equal(t, "Yankees", LastTokenParentClub("New York Yankees"))
	assert.Equal(t, "Sox", LastTokenParentClub("Boston Red Sox"))
	assert.Equal(t, "Tides", LastTokenParentClub("Tides"))
	assert.Equal(t, "", LastTokenParentClub(""))
	assert.Equal(t, " ", LastTokenParentClub(" "))
}

func TestClassifyHomeBeforeAway(t *testing.T) {
	days := []feeds.ScheduleDay{{Games: []feeds.Game{
		game(1, 10, "Home Club", 20, "Away Club", "Live"),
	}}}

	out := NewClassifier(nil).Classify(days, tracked(10, 20))
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].TeamID)
	assert.True(t, out[0].IsHome)
	assert.Equal(t, "Away Club", out[0].Opponent.Name)
	assert.Equal(t, "Club", out[0].Opponent.ParentClub)
	assert.Equal(t, StateInProgress, out[0].State)
}

func TestClassifyAwaySideAndDropsUntracked(t *testing.T) {
	days := []feeds.ScheduleDay{
		{Games: []feeds.Game{game(1, 30, "Somebody Else", 40, "Nobody", "Preview")}},
		{Games: []feeds.Game{game(2, 50, "Durham Bulls", 20, "Jacksonville Jumbo Shrimp", "Final")}},
	}

	out := NewClassifier(nil).Classify(days, tracked(20))
	require.Len(t, out, 1)
	assert.Equal(t, 20, out[0].TeamID)
	assert.False(t, out[0].IsHome)
	assert.Equal(t, "Durham Bulls", out[0].Opponent.Name)
	assert.Equal(t, StateCompleted, out[0].State)
	assert.Equal(t, 2, out[0].Game.GamePk)
}

func TestClassifyPreservesOrderAcrossDays(t *testing.T) {
	days := []feeds.ScheduleDay{
		{Games: []feeds.Game{game(1, 10, "A", 90, "B", "Final"), game(2, 90, "B", 10, "A", "Live")}},
		{Games: []feeds.Game{game(3, 10, "A", 91, "C", "Preview")}},
	}
	out := NewClassifier(nil).Classify(days, tracked(10))
	require.Len(t, out, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].Game.GamePk, out[1].Game.GamePk, out[2].Game.GamePk})
}

func TestClassifyUsesInjectedParentClub(t *testing.T) {
	upper := func(name string) string { return strings.ToUpper(name) }
	days := []feeds.ScheduleDay{{Games: []feeds.Game{game(1, 10, "A", 20, "Boston Red Sox", "Preview")}}}

	out := NewClassifier(upper).Classify(days, tracked(10))
	require.Len(t, out, 1)
	assert.Equal(t, "BOSTON RED SOX", out[0].Opponent.ParentClub)
}

func TestClassifyOtherState(t *testing.T) {
	days := []feeds.ScheduleDay{{Games: []feeds.Game{game(1, 10, "A", 20, "B", "Other")}}}
	out := NewClassifier(nil).Classify(days, tracked(10))
	require.Len(t, out, 1)
	assert.Equal(t, GameState("Other"), out[0].State)
}
