package providers

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlb-affiliates-service/internal/metrics"
)

func zeroBackoff(rp DataProvider) *retryingProvider {
	r := rp.(*retryingProvider)
	r.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return r
}

func TestRetryingProviderDefaultsToSingleAttempt(t *testing.T) {
	sp := newScriptedProvider(errors.New("boom"))
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(sp, nil, rec, "statsapi", 0, 0)

	_, err := rp.FetchBoxscore(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 1, sp.count(OpBoxscore))
	assert.Equal(t, 1, rec.Snapshot("statsapi.boxscore").Errors)
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	sp := newScriptedProvider(errors.New("boom"), errors.New("boom"))
	rec := metrics.NewRecorder()
	rp := zeroBackoff(NewRetryingProvider(sp, nil, rec, "statsapi", 3, time.Millisecond))

	days, err := rp.FetchSchedule(context.Background(), ScheduleQuery{Date: "2024-07-14"})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 3, sp.count(OpSchedule))

	snap := rec.Snapshot("statsapi.schedule")
	assert.Equal(t, 3, snap.Calls)
	assert.Equal(t, 2, snap.Errors)
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	sp := newScriptedProvider(errors.New("a"), errors.New("b"), errors.New("c"))
	rp := zeroBackoff(NewRetryingProvider(sp, nil, nil, "statsapi", 2, time.Millisecond))

	_, err := rp.FetchLiveFeed(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, 2, sp.count(OpLiveFeed))
}

func TestRetryingProviderDoesNotRetryNotFound(t *testing.T) {
	sp := newScriptedProvider(fmt.Errorf("game 1: %w", ErrNotFound))
	rec := metrics.NewRecorder()
	rp := zeroBackoff(NewRetryingProvider(sp, nil, rec, "statsapi", 3, time.Millisecond))

	_, err := rp.FetchPlayByPlay(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, sp.count(OpPlayByPlay))
	assert.Equal(t, 0, rec.Snapshot("statsapi.play_by_play").Errors)
}

func TestRetryingProviderRecordsRateLimit(t *testing.T) {
	sp := newScriptedProvider(&RateLimitError{StatusCode: 429, RetryAfter: time.Millisecond})
	rec := metrics.NewRecorder()
	rp := zeroBackoff(NewRetryingProvider(sp, nil, rec, "statsapi", 2, time.Millisecond))

	_, err := rp.FetchAffiliates(context.Background(), 146, 2024)
	require.NoError(t, err)

	snap := rec.Snapshot("statsapi.affiliates")
	assert.Equal(t, 1, snap.RateLimitHits)
	assert.Equal(t, time.Millisecond, snap.LastRetryAfter)
	assert.Equal(t, 2, snap.Calls)
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	sp := newScriptedProvider(errors.New("boom"), errors.New("boom"))
	rp := NewRetryingProvider(sp, nil, nil, "statsapi", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rp.FetchBoxscore(ctx, 1)
	require.Error(t, err)
	assert.LessOrEqual(t, sp.count(OpBoxscore), 1)
}

func TestHintedBackOffPrefersHint(t *testing.T) {
	b := &hintedBackOff{BackOff: backoff.NewConstantBackOff(time.Second), hint: 3 * time.Second}
	assert.Equal(t, 3*time.Second, b.NextBackOff())
	assert.Equal(t, time.Second, b.NextBackOff())

	stopped := &hintedBackOff{BackOff: &backoff.StopBackOff{}, hint: time.Second}
	assert.Equal(t, backoff.Stop, stopped.NextBackOff())
}

func TestRetryingProviderNilInner(t *testing.T) {
	rp := NewRetryingProvider(nil, nil, nil, "", 0, 0)
	_, err := rp.FetchSchedule(context.Background(), ScheduleQuery{})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, "provider", rp.(*retryingProvider).providerName)
}
