package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	misses          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

// Recorder keeps in-memory counters per upstream source and forwards them to
// OpenTelemetry instruments when configured. A nil Recorder is a no-op.
type Recorder struct {
	mu         sync.Mutex
	stats      map[string]*sourceStats
	reconciles map[string]int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:      make(map[string]*sourceStats),
		reconciles: make(map[string]int),
		otel:       otel,
	}
}

// RecordUpstreamAttempt counts one call to an upstream source and keeps its latency.
func (r *Recorder) RecordUpstreamAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.update(source, func(s *sourceStats) {
		s.calls++
		s.lastCallLatency = duration
		if err != nil {
			s.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordUpstreamAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks a rate limited response and the last Retry-After.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}
	r.update(source, func(s *sourceStats) {
		s.rateLimitHits++
		if retryAfter > 0 {
			s.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordSourceMiss counts an auxiliary source that was absent or failed during reconciliation.
func (r *Recorder) RecordSourceMiss(source string) {
	if r == nil {
		return
	}
	r.update(source, func(s *sourceStats) { s.misses++ })
	if r.otel != nil {
		r.otel.recordSourceMiss(source)
	}
}

// RecordReconcile counts one reconciled game per state.
func (r *Recorder) RecordReconcile(state string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.reconciles[state]++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordReconcile(state, duration)
	}
}

// Reconciled returns how many games were reconciled for a state.
func (r *Recorder) Reconciled(state string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reconciles[state]
}

// Snapshot is a copy of the counters of one source.
type Snapshot struct {
	Calls           int
	Errors          int
	Misses          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[source]
	if !ok {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           s.calls,
		Errors:          s.errors,
		Misses:          s.misses,
		RateLimitHits:   s.rateLimitHits,
		LastRetryAfter:  s.lastRetryAfter,
		LastCallLatency: s.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks roster refresh cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) update(source string, fn func(*sourceStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[source]
	if !ok {
		s = &sourceStats{}
		r.stats[source] = s
	}
	fn(s)
}
