package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlb-affiliates-service/internal/providers"
)

func TestFetchAffiliatesKnowsOnlyTheMarlins(t *testing.T) {
	p := New()
	records, err := p.FetchAffiliates(context.Background(), ParentTeamID, 2024)
	require.NoError(t, err)
	require.Len(t, records, 6)
	assert.Equal(t, 146, records[0].ID)

	_, err = p.FetchAffiliates(context.Background(), 147, 2024)
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestFetchScheduleUsesQueryDate(t *testing.T) {
	p := New()
	days, err := p.FetchSchedule(context.Background(), providers.ScheduleQuery{Date: "2024-07-14", TeamIDs: []int{146, 564}})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-07-14", days[0].Date)
	require.Len(t, days[0].Games, 2)
	assert.Equal(t, GamePreview, days[0].Games[0].GamePk)
	assert.Equal(t, "2024-07-14T23:00:00Z", days[0].Games[0].GameDate)
	assert.Equal(t, GameLive, days[0].Games[1].GamePk)
}

func TestFetchScheduleDefaultsToToday(t *testing.T) {
	p := New()
	p.now = func() time.Time { return time.Date(2024, 8, 2, 15, 0, 0, 0, time.UTC) }
	days, err := p.FetchSchedule(context.Background(), providers.ScheduleQuery{})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-08-02", days[0].Date)
	assert.Len(t, days[0].Games, 5)
}

func TestFetchScheduleNoMatchingTeams(t *testing.T) {
	days, err := New().FetchSchedule(context.Background(), providers.ScheduleQuery{TeamIDs: []int{1}})
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestGameFeedsAbsentForUnknownGames(t *testing.T) {
	p := New()
	ctx := context.Background()

	box, err := p.FetchBoxscore(ctx, GameFinal)
	require.NoError(t, err)
	assert.Len(t, box.Teams.Home.Pitchers, 2)

	_, err = p.FetchBoxscore(ctx, 1)
	assert.ErrorIs(t, err, providers.ErrNotFound)

	live, err := p.FetchLiveFeed(ctx, GameLive)
	require.NoError(t, err)
	assert.Equal(t, "Top", live.LiveData.Linescore.InningHalf)

	_, err = p.FetchLiveFeed(ctx, GameLiveNoFeed)
	assert.ErrorIs(t, err, providers.ErrNotFound)

	pbp, err := p.FetchPlayByPlay(ctx, GameLiveNoFeed)
	require.NoError(t, err)
	assert.NotEmpty(t, pbp.AllPlays)

	_, err = p.FetchPlayByPlay(ctx, GameLive)
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestPayloadsAreFreshCopies(t *testing.T) {
	p := New()
	box, err := p.FetchBoxscore(context.Background(), GameFinal)
	require.NoError(t, err)
	box.Teams.Home.Players[0].Person.FullName = "mutated"

	again, err := p.FetchBoxscore(context.Background(), GameFinal)
	require.NoError(t, err)
	assert.Equal(t, "Robby Snelling", again.Teams.Home.Players[0].Person.FullName)
}
