package notification

import (
	"context"
	"log/slog"

	"helios/internal/domain/service"
)

// logResetNotifier records reset dispatches to the structured log. It stands
// in for an outbound mail integration; the token itself is never logged.
type logResetNotifier struct {
	logger *slog.Logger
}

// NewLogResetNotifier creates a ResetNotifier that only logs the dispatch.
func NewLogResetNotifier(logger *slog.Logger) service.ResetNotifier {
	return &logResetNotifier{logger: logger}
}

// DispatchPasswordReset logs that a reset was issued for the address.
func (n *logResetNotifier) DispatchPasswordReset(ctx context.Context, email, token string) error {
	n.logger.InfoContext(ctx, "password reset dispatched",
		slog.String("email", email),
		slog.Int("tokenLength", len(token)),
	)

	return nil
}
