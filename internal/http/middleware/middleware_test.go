package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlb-affiliates-service/internal/http/requestutil"
	"mlb-affiliates-service/internal/logging"
	"mlb-affiliates-service/internal/metrics"
	"mlb-affiliates-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndLogger(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	var seenID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = requestutil.RequestIDFromContext(r.Context())
		require.NotNil(t, logging.FromContext(r.Context(), nil))
		w.WriteHeader(http.StatusTeapot)
	})

	rr := testutil.Serve(LoggingMiddleware(logger, metrics.NewRecorder(), next), http.MethodGet, "/schedule?date=2024-07-14", nil)

	testutil.AssertStatus(t, rr, http.StatusTeapot)
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rr.Header().Get(requestutil.HeaderRequestID))
	assert.Contains(t, buf.String(), "request complete")
	assert.Contains(t, buf.String(), "status_code=418")
	assert.Contains(t, buf.String(), "query=date=2024-07-14")
}

func TestLoggingMiddlewareKeepsValidIncomingID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc-123", requestutil.RequestIDFromContext(r.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestutil.HeaderRequestID, "abc-123")
	rr := testutil.ServeRequest(LoggingMiddleware(logger, nil, next), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, "abc-123", rr.Header().Get(requestutil.HeaderRequestID))
}

func TestLoggingMiddlewareWarnsOnServerErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	testutil.Serve(LoggingMiddleware(logger, nil, next), http.MethodGet, "/schedule", nil)
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestLoggingMiddlewareNilLogger(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	rr := testutil.Serve(LoggingMiddleware(nil, nil, next), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/schedule", "/schedule"},
		{"/health", "/health"},
		{"/ready", "/ready"},
		{"/teams/146", "other"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizePath(tt.in), tt.in)
	}
}
