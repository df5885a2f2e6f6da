package statsapi

import "time"

const (
	providerName       = "statsapi"
	defaultBaseURL     = "https://statsapi.mlb.com"
	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "mlb-affiliates-service"
	scheduleHydrate    = "probablePitcher,decisions"
	maxErrorBody       = 512

	affiliatesPath = "/api/v1/teams/affiliates"
	schedulePath   = "/api/v1/schedule"
	boxscorePath   = "/api/v1/game/%d/boxscore"
	liveFeedPath   = "/api/v1.1/game/%d/feed/live"
	playByPlayPath = "/api/v1/game/%d/playByPlay"
)
