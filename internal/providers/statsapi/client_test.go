package statsapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlb-affiliates-service/internal/providers"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(rt roundTripperFunc) *Client {
	return NewClient(Config{BaseURL: "https://example.test/", HTTPClient: &http.Client{Transport: rt}})
}

func TestFetchAffiliatesBuildsQuery(t *testing.T) {
	var captured *http.Request
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, `{"teams":[
			{"id":146,"name":"Miami Marlins","sport":{"id":1,"name":"Major League Baseball"}},
			{"id":564,"name":"Jacksonville Jumbo Shrimp","sport":{"id":11,"name":"Triple-A","abbreviation":"AAA"}}
		]}`), nil
	})

	records, err := c.FetchAffiliates(context.Background(), 146, 2024)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Triple-A", records[1].Sport.Name)

	require.NotNil(t, captured)
	assert.Equal(t, "/api/v1/teams/affiliates", captured.URL.Path)
	assert.Equal(t, "146", captured.URL.Query().Get("teamIds"))
	assert.Equal(t, "2024", captured.URL.Query().Get("season"))
	assert.Equal(t, "application/json", captured.Header.Get("Accept"))
	assert.Equal(t, defaultUserAgent, captured.Header.Get("User-Agent"))
}

func TestFetchScheduleJoinsIDs(t *testing.T) {
	var query map[string]string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/api/v1/schedule", req.URL.Path)
		q := req.URL.Query()
		query = map[string]string{"teamId": q.Get("teamId"), "sportId": q.Get("sportId"), "date": q.Get("date"), "hydrate": q.Get("hydrate")}
		return jsonResponse(http.StatusOK, `{"dates":[{"date":"2024-07-14","games":[
			{"gamePk":745001,"gameDate":"2024-07-14T23:05:00Z",
			 "status":{"abstractGameState":"Live","detailedState":"In Progress"},
			 "teams":{"home":{"team":{"id":564,"name":"Jacksonville Jumbo Shrimp"},"score":3},
			          "away":{"team":{"id":568,"name":"Norfolk Tides"},"score":2}},
			 "venue":{"id":1,"name":"121 Financial Ballpark"}}
		]}]}`), nil
	})

	days, err := c.FetchSchedule(context.Background(), providers.ScheduleQuery{TeamIDs: []int{146, 564}, SportIDs: []int{1, 11}, Date: "2024-07-14"})
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Games, 1)
	g := days[0].Games[0]
	assert.Equal(t, 745001, g.GamePk)
	assert.Equal(t, 3, g.Teams.Home.ScoreOrZero())
	assert.Equal(t, "121 Financial Ballpark", g.Venue.Name)

	assert.Equal(t, "146,564", query["teamId"])
	assert.Equal(t, "1,11", query["sportId"])
	assert.Equal(t, "2024-07-14", query["date"])
	assert.Equal(t, scheduleHydrate, query["hydrate"])
}

func TestFetchGameFeedsUsePerGamePaths(t *testing.T) {
	var paths []string
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		paths = append(paths, req.URL.Path)
		switch {
		case strings.HasSuffix(req.URL.Path, "/boxscore"):
			return jsonResponse(http.StatusOK, `{"teams":{"home":{"players":{"ID1":{"person":{"id":1,"fullName":"A"}}}},"away":{}}}`), nil
		case strings.HasSuffix(req.URL.Path, "/feed/live"):
			return jsonResponse(http.StatusOK, `{"gamePk":9,"liveData":{"linescore":{"currentInning":4,"inningHalf":"Top","outs":1}}}`), nil
		default:
			return jsonResponse(http.StatusOK, `{"allPlays":[{"about":{"inning":1,"halfInning":"top"},"runners":[{"movement":{"start":null,"end":"1B"},"details":{"runner":{"id":5}}}]}]}`), nil
		}
	})
	ctx := context.Background()

	box, err := c.FetchBoxscore(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, box.Teams.Home.Players, 1)

	live, err := c.FetchLiveFeed(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, live.LiveData.Linescore)
	assert.Equal(t, 4, *live.LiveData.Linescore.CurrentInning)

	pbp, err := c.FetchPlayByPlay(ctx, 9)
	require.NoError(t, err)
	require.Len(t, pbp.AllPlays, 1)
	assert.Equal(t, "1B", pbp.AllPlays[0].Runners[0].Movement.End)

	assert.Equal(t, []string{
		"/api/v1/game/9/boxscore",
		"/api/v1.1/game/9/feed/live",
		"/api/v1/game/9/playByPlay",
	}, paths)
}

func TestNotFoundIsTypedAbsence(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"nope"}`), nil
	})
	_, err := c.FetchBoxscore(context.Background(), 1)
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestNonSuccessStatusReturnsStatusError(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "  upstream exploded  "), nil
	})
	_, err := c.FetchSchedule(context.Background(), providers.ScheduleQuery{TeamIDs: []int{1}, Date: "2024-07-14"})

	var statusErr *providers.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream exploded", statusErr.Body)
	assert.False(t, providers.IsNotFound(err))
}

func TestRateLimitCarriesRetryAfter(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "")
		resp.Header.Set("Retry-After", "7")
		return resp, nil
	})
	_, err := c.FetchLiveFeed(context.Background(), 1)

	rl, ok := providers.AsRateLimitError(err)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestMalformedPayload(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"teams": [`), nil
	})
	_, err := c.FetchAffiliates(context.Background(), 146, 2024)
	assert.ErrorIs(t, err, providers.ErrMalformedPayload)
}

func TestTransportErrorIsWrapped(t *testing.T) {
	boom := errors.New("dial failed")
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, boom
	})
	_, err := c.FetchPlayByPlay(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

func TestClientAgainstHTTPTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"teams":[{"id":146,"name":"Miami Marlins"}]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: time.Second})
	records, err := c.FetchAffiliates(context.Background(), 146, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
}
