package server

import (
	"context"

	"mlb-affiliates-service/internal/poller"
)

// Poller defines the roster refresh loop as seen by the server.
type Poller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() poller.Status
}
