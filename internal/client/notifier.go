package client

import (
	"context"
	"log/slog"

	"github.com/onlyscores/onlyscores-data/internal/scoreboard"
)

// Notifier delivers notification events produced by the diff engine. The
// delivery subsystem (local alerts, push) lives outside the core; this is
// its seam.
type Notifier interface {
	Notify(ctx context.Context, event scoreboard.Event) error
}

// LogNotifier writes notification events to the log. It is the delivery
// collaborator for the headless watcher.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event scoreboard.Event) error {
	n.logger.Info("notification",
		"title", event.Title,
		"body", event.Body,
		"card_id", event.Data["cardId"],
		"game_id", event.Data["gameId"],
		"type", event.Data["type"])
	return nil
}
