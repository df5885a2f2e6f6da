package providers

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound marks an upstream resource that does not exist. Callers treat it as absence.
	ErrNotFound = errors.New("upstream resource not found")
	// ErrProviderUnavailable is returned when no provider is configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
	// ErrMalformedPayload marks a response body that could not be decoded.
	ErrMalformedPayload = errors.New("malformed upstream payload")
)

// StatusError captures a non-2xx upstream response.
type StatusError struct {
	Provider   string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: unexpected status %d for %s", e.Provider, e.StatusCode, e.Path)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// IsNotFound reports whether err marks an absent upstream resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
