package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"mlb-affiliates-service/internal/domain/games"
	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/poller"
	"mlb-affiliates-service/internal/timeutil"
)

// ScheduleService builds the per-team view for a date.
type ScheduleService interface {
	Schedule(ctx context.Context, date time.Time) (games.ScheduleView, error)
}

type nowFunc func() time.Time

// Handler wires HTTP routes to the schedule service.
type Handler struct {
	svc      ScheduleService
	loc      *time.Location
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. loc is the zone used to pick "today" when
// a request names neither a date nor a tz; nil means UTC.
func NewHandler(svc ScheduleService, loc *time.Location, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		svc:      svc,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/schedule":
		h.Schedule(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the affiliate roster has been loaded recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Schedule returns every tracked team's game on the requested date.
// Query: date=YYYY-MM-DD (default today) and tz=Area/City (default the
// configured zone).
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}
	query := r.URL.Query()

	loc := h.loc
	if tz := strings.TrimSpace(query.Get("tz")); tz != "" {
		loc = timeutil.LoadLocation(tz)
		if loc == nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid tz (expected an IANA zone such as America/New_York)", h.logger)
			return
		}
	}

	date := timeutil.Today(h.now(), loc)
	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		parsed, err := timeutil.ParseDate(raw, loc)
		if err != nil {
			writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
			return
		}
		date = parsed
	}

	logger := loggerFromContext(r, h.logger)
	view, err := h.svc.Schedule(r.Context(), date)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			writeError(w, r, nethttp.StatusServiceUnavailable, "request canceled", h.logger)
			return
		}
		logging.Error(logger, "schedule lookup failed", err, slog.String(logging.FieldDate, timeutil.FormatDate(date)))
		writeError(w, r, nethttp.StatusBadGateway, "upstream schedule unavailable", h.logger)
		return
	}

	logging.Info(logger, "served schedule",
		slog.String(logging.FieldDate, timeutil.FormatDate(date)),
		slog.Int(logging.FieldCount, len(view)),
	)
	writeJSON(w, nethttp.StatusOK, view, h.logger)
}
