package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/metrics"
)

const (
	defaultRetryAttempts = 1
	defaultBackoff       = 200 * time.Millisecond
)

// retryingProvider records every upstream attempt and optionally retries failed ones.
// With maxAttempts of 1 (the default) each call is attempted exactly once.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider. Values <= 0 select the defaults.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, initialBackoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initialBackoff <= 0 {
		initialBackoff = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initialBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

// hintedBackOff prefers an upstream Retry-After hint over the computed interval.
type hintedBackOff struct {
	backoff.BackOff
	hint time.Duration
}

func (b *hintedBackOff) NextBackOff() time.Duration {
	next := b.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.hint > 0 {
		next, b.hint = b.hint, 0
	}
	return next
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if r == nil || r.inner == nil {
		return zero, ErrProviderUnavailable
	}
	source := r.providerName + "." + op
	policy := &hintedBackOff{
		BackOff: backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)),
	}

	attempt := 0
	result, err := backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		start := time.Now()
		out, err := fn(ctx)
		r.record(source, time.Since(start), err)

		switch {
		case err == nil:
			return out, nil
		case IsNotFound(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return zero, backoff.Permanent(err)
		}
		if rl, ok := AsRateLimitError(err); ok {
			policy.hint = rl.RetryAfter
		}
		return zero, err
	}, backoff.WithContext(policy, ctx), func(err error, delay time.Duration) {
		logWithSource(ctx, r.logger, slog.LevelWarn, source, "upstream fetch retry",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", r.maxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)
	})
	if err != nil && !IsNotFound(err) && r.maxAttempts > 1 {
		logWithSource(ctx, r.logger, slog.LevelWarn, source, "upstream fetch failed",
			slog.Int("attempts", attempt),
			slog.Any("error", err),
		)
	}
	return result, err
}

func (r *retryingProvider) record(source string, duration time.Duration, err error) {
	if r.metrics == nil {
		return
	}
	if IsNotFound(err) {
		err = nil
	}
	r.metrics.RecordUpstreamAttempt(source, duration, err)
	if rl, ok := AsRateLimitError(err); ok {
		r.metrics.RecordRateLimit(source, rl.RetryAfter)
	}
}

func (r *retryingProvider) FetchAffiliates(ctx context.Context, parentTeamID, season int) ([]feeds.AffiliateRecord, error) {
	return withRetry(ctx, r, OpAffiliates, func(ctx context.Context) ([]feeds.AffiliateRecord, error) {
		return r.inner.FetchAffiliates(ctx, parentTeamID, season)
	})
}

func (r *retryingProvider) FetchSchedule(ctx context.Context, q ScheduleQuery) ([]feeds.ScheduleDay, error) {
	return withRetry(ctx, r, OpSchedule, func(ctx context.Context) ([]feeds.ScheduleDay, error) {
		return r.inner.FetchSchedule(ctx, q)
	})
}

func (r *retryingProvider) FetchBoxscore(ctx context.Context, gamePk int) (*feeds.Boxscore, error) {
	return withRetry(ctx, r, OpBoxscore, func(ctx context.Context) (*feeds.Boxscore, error) {
		return r.inner.FetchBoxscore(ctx, gamePk)
	})
}

func (r *retryingProvider) FetchLiveFeed(ctx context.Context, gamePk int) (*feeds.LiveFeed, error) {
	return withRetry(ctx, r, OpLiveFeed, func(ctx context.Context) (*feeds.LiveFeed, error) {
		return r.inner.FetchLiveFeed(ctx, gamePk)
	})
}

func (r *retryingProvider) FetchPlayByPlay(ctx context.Context, gamePk int) (*feeds.PlayByPlay, error) {
	return withRetry(ctx, r, OpPlayByPlay, func(ctx context.Context) (*feeds.PlayByPlay, error) {
		return r.inner.FetchPlayByPlay(ctx, gamePk)
	})
}
