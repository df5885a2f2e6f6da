package providers

import (
	"context"
	"log/slog"

	"mlb-affiliates-service/internal/logging"
)

// logWithSource emits a log entry through the request logger when present and always includes the source name.
func logWithSource(ctx context.Context, fallback *slog.Logger, level slog.Level, source string, msg string, args ...any) {
	logger := logging.FromContext(ctx, fallback)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldSource, source))
	logger.Log(ctx, level, msg, args...)
}
