// Package poller keeps the cached affiliate roster warm on a cron schedule.
package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/metrics"
	"mlb-affiliates-service/internal/providers"
)

const (
	DefaultSchedule = "@every 6h"
	sourceName      = "poller"
)

// Config wires a Poller.
type Config struct {
	Refresher    providers.AffiliateRefresher
	ParentTeamID int
	Schedule     string
	Location     *time.Location
	Logger       *slog.Logger
	Metrics      *metrics.Recorder
}

// Poller refreshes the parent club's roster on start and then on Schedule.
type Poller struct {
	refresher providers.AffiliateRefresher
	parentID  int
	schedule  string
	loc       *time.Location
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time

	cron    *cron.Cron
	entry   cron.EntryID
	startMu sync.Mutex
	started bool
	wg      sync.WaitGroup

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	LastCount           int
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. An empty schedule means DefaultSchedule.
func New(cfg Config) *Poller {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Poller{
		refresher: cfg.Refresher,
		parentID:  cfg.ParentTeamID,
		schedule:  cfg.Schedule,
		loc:       cfg.Location,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		now:       time.Now,
		cron:      cron.New(cron.WithLocation(cfg.Location)),
	}
}

// Start registers the refresh job, kicks off one refresh immediately and
// starts the scheduler. Jobs run with ctx until Stop.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return nil
	}
	entry, err := p.cron.AddFunc(p.schedule, func() { _ = p.Refresh(ctx) })
	if err != nil {
		return fmt.Errorf("schedule roster refresh %q: %w", p.schedule, err)
	}
	p.entry = entry
	p.started = true

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_ = p.Refresh(ctx)
	}()
	p.cron.Start()
	logging.Info(p.logger, "poller started", slog.String("schedule", p.schedule))
	return nil
}

// Stop halts the scheduler, drops the refresh job so a later Start registers
// exactly one, and waits for running refreshes, up to ctx.
func (p *Poller) Stop(ctx context.Context) error {
	p.startMu.Lock()
	started := p.started
	p.started = false
	if started {
		p.cron.Remove(p.entry)
	}
	p.startMu.Unlock()
	if !started {
		return nil
	}

	cronDone := p.cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logging.Info(p.logger, "poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh fetches the roster for the current season, bypassing the cache.
func (p *Poller) Refresh(ctx context.Context) error {
	start := p.now()
	p.recordAttempt(start)
	season := start.In(p.loc).Year()

	records, err := p.refresher.RefreshAffiliates(ctx, p.parentID, season)
	p.metrics.RecordPollerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "roster refresh failed", err,
			slog.String(logging.FieldSource, sourceName),
			slog.Int(logging.FieldTeamID, p.parentID),
		)
		p.recordFailure(err, start)
		return err
	}

	p.recordSuccess(start, len(records))
	logging.Info(p.logger, "roster refreshed",
		slog.Int(logging.FieldTeamID, p.parentID),
		slog.Int(logging.FieldCount, len(records)),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return nil
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, count int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.LastCount = count
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
