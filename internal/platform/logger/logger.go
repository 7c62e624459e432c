package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. JSON output on stdout;
// level comes from REMEDIA_LOG_LEVEL ("debug" enables debug logging).
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("REMEDIA_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
