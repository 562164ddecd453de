package logger

import (
	"log/slog"
	"os"
)

// New creates the process-wide slog.Logger. Every record carries the service
// name so aggregated logs from the API and the sweeper stay attributable.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(handler).With(slog.String("service", "mealdesk"))
}
