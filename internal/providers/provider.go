package providers

import (
	"context"

	"mlb-affiliates-service/internal/domain/feeds"
)

// Upstream operation names, used for metrics and logs.
const (
	OpAffiliates = "affiliates"
	OpSchedule   = "schedule"
	OpBoxscore   = "boxscore"
	OpLiveFeed   = "live_feed"
	OpPlayByPlay = "play_by_play"
)

// ScheduleQuery selects the schedule entries to fetch.
// Date is a YYYY-MM-DD string.
type ScheduleQuery struct {
	TeamIDs  []int
	SportIDs []int
	Date     string
}

// AffiliateProvider fetches the organization roster of a parent club.
type AffiliateProvider interface {
	FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error)
}

// ScheduleProvider fetches schedule days.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, q ScheduleQuery) ([]feeds.ScheduleDay, error)
}

// GameFeedProvider fetches the per-game auxiliary payloads. Implementations
// return ErrNotFound when the upstream has no payload for the game.
type GameFeedProvider interface {
	FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error)
	FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error)
	FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	AffiliateProvider
	ScheduleProvider
	GameFeedProvider
}

// AffiliateRefresher bypasses any cached roster and stores the fresh one.
type AffiliateRefresher interface {
	RefreshAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error)
}
