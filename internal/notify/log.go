// Package notify delivers user-facing messages produced by the issue workflow.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes every notification to the application log.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, userID int64, message string) {
	n.log.InfoContext(ctx, "notification to user",
		slog.Int64("user_id", userID),
		slog.String("message", message),
	)

	notificationsTotal.WithLabelValues("log", "sent").Inc()
}
