// Package schedule answers "what is each tracked team playing on a date" by
// running the resolver, classifier, reconciler and assembler in order.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mlb-affiliates-service/internal/domain/affiliates"
	"mlb-affiliates-service/internal/domain/games"
	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/providers"
	"mlb-affiliates-service/internal/reconcile"
	"mlb-affiliates-service/internal/timeutil"
)

// ErrUpstream marks a failure of a primary source (roster or schedule).
var ErrUpstream = errors.New("primary upstream failed")

// Reconciler builds the details of classified games.
type Reconciler interface {
	ReconcileAll(ctx context.Context, classified []games.ClassifiedGame) []games.Reconciled
}

// Service coordinates one schedule lookup.
type Service struct {
	roster     providers.AffiliateProvider
	schedule   providers.ScheduleProvider
	resolver   *affiliates.Resolver
	classifier *games.Classifier
	reconciler Reconciler
	parentID   int
	logger     *slog.Logger
}

// Config wires a Service.
type Config struct {
	Affiliates   providers.AffiliateProvider
	Schedule     providers.ScheduleProvider
	Resolver     *affiliates.Resolver
	Classifier   *games.Classifier
	Reconciler   Reconciler
	ParentTeamID int
	Logger       *slog.Logger
}

// NewService constructs a Service. Resolver and Classifier default to the
// standard level table and last-token parent club; without a Reconciler every
// game gets its defaulted detail.
func NewService(cfg Config) *Service {
	if cfg.Resolver == nil {
		cfg.Resolver = affiliates.NewResolver(nil)
	}
	if cfg.Classifier == nil {
		cfg.Classifier = games.NewClassifier(nil)
	}
	if cfg.Reconciler == nil {
		cfg.Reconciler = reconcile.New(nil, reconcile.Options{Logger: cfg.Logger})
	}
	return &Service{
		roster:     cfg.Affiliates,
		schedule:   cfg.Schedule,
		resolver:   cfg.Resolver,
		classifier: cfg.Classifier,
		reconciler: cfg.Reconciler,
		parentID:   cfg.ParentTeamID,
		logger:     cfg.Logger,
	}
}

// ParentTeamID is the club whose organization is tracked.
func (s *Service) ParentTeamID() int {
	return s.parentID
}

// Schedule returns the view for every tracked team on date. The season is
// the date's year. Errors wrap ErrUpstream.
func (s *Service) Schedule(ctx context.Context, date time.Time) (games.ScheduleView, error) {
	logger := logging.FromContext(ctx, s.logger)
	day := timeutil.FormatDate(date)

	records, err := s.roster.FetchAffiliates(ctx, s.parentID, date.Year())
	switch {
	case providers.IsNotFound(err):
		logging.Warn(logger, "affiliate roster not found", slog.Int(logging.FieldTeamID, s.parentID))
		records = nil
	case err != nil:
		return nil, fmt.Errorf("%w: affiliates: %w", ErrUpstream, err)
	}

	tracked := s.resolver.Resolve(records)
	if len(tracked) == 0 {
		return games.ScheduleView{}, nil
	}

	days, err := s.schedule.FetchSchedule(ctx, providers.ScheduleQuery{
		TeamIDs:  tracked.IDs(),
		SportIDs: affiliates.SportIDs(records),
		Date:     day,
	})
	switch {
	case providers.IsNotFound(err):
		days = nil
	case err != nil:
		return nil, fmt.Errorf("%w: schedule: %w", ErrUpstream, err)
	}

	classified := s.classifier.Classify(days, tracked)
	results := s.reconciler.ReconcileAll(ctx, classified)

	logging.Debug(logger, "schedule assembled",
		slog.String(logging.FieldDate, day),
		slog.Int(logging.FieldCount, len(classified)),
	)
	return games.Assemble(tracked, results), nil
}

// Affiliates returns the resolved tracked set for a season.
func (s *Service) Affiliates(ctx context.Context, season int) (affiliates.TrackedSet, error) {
	records, err := s.roster.FetchAffiliates(ctx, s.parentID, season)
	if err != nil && !providers.IsNotFound(err) {
		return nil, fmt.Errorf("%w: affiliates: %w", ErrUpstream, err)
	}
	return s.resolver.Resolve(records), nil
}
