// Package statsapi reads affiliate rosters, schedules and per-game feeds from the MLB Stats API.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/providers"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

var _ providers.DataProvider = (*Client)(nil)

// Client implements providers.DataProvider over HTTP.
type Client struct {
	baseURL    string
	httpClient httpDoer
	userAgent  string
	now        func() time.Time
}

// NewClient constructs a Stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		userAgent:  ua,
		now:        time.Now,
	}
}

// FetchAffiliates returns the parent club and its affiliates for a season.
func (c *Client) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	q := url.Values{}
	q.Set("teamIds", strconv.Itoa(parentTeamID))
	if season > 0 {
		q.Set("season", strconv.Itoa(season))
	}
	var payload feeds.AffiliatesResponse
	if err := c.getJSON(ctx, affiliatesPath, q, &payload); err != nil {
		return nil, err
	}
	return payload.Teams, nil
}

// FetchSchedule returns the schedule days for the given teams, levels and date.
func (c *Client) FetchSchedule(ctx context.Context, query providers.ScheduleQuery) ([]feeds.ScheduleDay, error) {
	q := url.Values{}
	q.Set("teamId", joinInts(query.TeamIDs))
	if len(query.SportIDs) > 0 {
		q.Set("sportId", joinInts(query.SportIDs))
	}
	q.Set("date", query.Date)
	q.Set("hydrate", scheduleHydrate)
	var payload feeds.ScheduleResponse
	if err := c.getJSON(ctx, schedulePath, q, &payload); err != nil {
		return nil, err
	}
	return payload.Dates, nil
}

// FetchBoxscore returns the boxscore of a game.
func (c *Client) FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error) {
	var payload feeds.Boxscore
	if err := c.getJSON(ctx, fmt.Sprintf(boxscorePath, gamePk), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchLiveFeed returns the live feed of a game.
func (c *Client) FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error) {
	var payload feeds.LiveFeed
	if err := c.getJSON(ctx, fmt.Sprintf(liveFeedPath, gamePk), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchPlayByPlay returns every play of a game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error) {
	var payload feeds.PlayByPlay
	if err := c.getJSON(ctx, fmt.Sprintf(playByPlayPath, gamePk), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: GET %s: %w", providerName, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%s: GET %s: %w", providerName, path, providers.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    providerName + " rate limited",
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode %s: %w: %v", providerName, path, providers.ErrMalformedPayload, err)
	}
	return nil
}
