// Package reconcile builds the state-specific detail of each classified game
// by folding the available upstream sources in a fixed precedence.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"mlb-affiliates-service/internal/domain/feeds"
	"mlb-affiliates-service/internal/domain/games"
	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/metrics"
	"mlb-affiliates-service/internal/providers"
)

const (
	// DefaultUnknown fills string fields no source could supply.
	DefaultUnknown     = "N/A"
	defaultConcurrency = 8
)

// Options configures a Reconciler.
type Options struct {
	Unknown      string
	Concurrency  int
	StatusParser StatusParser
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
}

// Reconciler turns classified games into details.
type Reconciler struct {
	feeds       providers.GameFeedProvider
	unknown     string
	concurrency int
	parseStatus StatusParser
	logger      *slog.Logger
	metrics     *metrics.Recorder
}

// New builds a Reconciler reading auxiliary payloads from src.
func New(src providers.GameFeedProvider, opts Options) *Reconciler {
	if opts.Unknown == "" {
		opts.Unknown = DefaultUnknown
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.StatusParser == nil {
		opts.StatusParser = ParseStatusText
	}
	return &Reconciler{
		feeds:       src,
		unknown:     opts.Unknown,
		concurrency: opts.Concurrency,
		parseStatus: opts.StatusParser,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// ReconcileAll reconciles every game with bounded concurrency. Results keep
// the input order. A failing game never affects its siblings.
func (r *Reconciler) ReconcileAll(ctx context.Context, classified []games.ClassifiedGame) []games.Reconciled {
	results := make([]games.Reconciled, len(classified))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, cg := range classified {
		i, cg := i, cg
		g.Go(func() error {
			results[i] = games.Reconciled{Classified: cg, Detail: r.Reconcile(ctx, cg)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Reconcile builds the detail of one game. It always returns the variant
// matching the game's state; a game that blows up gets the defaulted variant.
func (r *Reconciler) Reconcile(ctx context.Context, cg games.ClassifiedGame) games.Detail {
	start := time.Now()
	detail, err := r.reconcile(ctx, cg)
	if err != nil {
		logging.Error(logging.FromContext(ctx, r.logger), "reconcile failed", err,
			slog.Int(logging.FieldGamePk, cg.Game.GamePk),
			slog.String(logging.FieldGameState, string(cg.State)),
		)
		detail = games.DefaultDetail(cg.State, r.unknown)
	}
	r.metrics.RecordReconcile(string(cg.State), time.Since(start))
	return detail
}

func (r *Reconciler) reconcile(ctx context.Context, cg games.ClassifiedGame) (detail games.Detail, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	pk := cg.Game.GamePk
	switch cg.State {
	case games.StateNotStarted:
		return assembleNotStarted(cg.Game, r.boxscore(ctx, pk), r.unknown), nil
	case games.StateInProgress:
		in := inProgressInputs{game: cg.Game}
		var g errgroup.Group
		g.Go(func() error {
			return capturePanic(func() { in.live = r.liveFeed(ctx, pk) })
		})
		g.Go(func() error {
			return capturePanic(func() { in.box = r.boxscore(ctx, pk) })
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		in.plays = func() *feeds.PlayByPlay { return r.playByPlay(ctx, pk) }
		return assembleInProgress(in, r.parseStatus, r.unknown), nil
	case games.StateCompleted:
		return assembleCompleted(cg.Game, r.boxscore(ctx, pk), r.unknown), nil
	default:
		return games.OtherDetail{}, nil
	}
}

// capturePanic runs fn and reports a panic as an error, so fetches running on
// their own goroutine fail the game instead of the process.
func capturePanic(fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	fn()
	return nil
}

func (r *Reconciler) boxscore(ctx context.Context, pk int) *feeds.Boxscore {
	if r.feeds == nil {
		return nil
	}
	return fetchOptional(ctx, r, providers.OpBoxscore, pk, r.feeds.FetchBoxscore)
}

func (r *Reconciler) liveFeed(ctx context.Context, pk int) *feeds.LiveFeed {
	if r.feeds == nil {
		return nil
	}
	return fetchOptional(ctx, r, providers.OpLiveFeed, pk, r.feeds.FetchLiveFeed)
}

func (r *Reconciler) playByPlay(ctx context.Context, pk int) *feeds.PlayByPlay {
	if r.feeds == nil {
		return nil
	}
	return fetchOptional(ctx, r, providers.OpPlayByPlay, pk, r.feeds.FetchPlayByPlay)
}

// fetchOptional turns every failure into an absent source.
func fetchOptional[T any](ctx context.Context, r *Reconciler, source string, pk int, fetch func(context.Context, int) (*T, error)) *T {
	v, err := fetch(ctx, pk)
	if err == nil && v != nil {
		return v
	}
	r.metrics.RecordSourceMiss(source)

	logger := logging.FromContext(ctx, r.logger)
	attrs := []any{
		slog.String(logging.FieldSource, source),
		slog.Int(logging.FieldGamePk, pk),
	}
	if err == nil || providers.IsNotFound(err) {
		logging.Debug(logger, "auxiliary source absent", attrs...)
		return nil
	}
	logging.Warn(logger, "auxiliary source failed", append(attrs, slog.Any(logging.FieldError, err))...)
	return nil
}
