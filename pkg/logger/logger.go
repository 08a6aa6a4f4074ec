package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init installs the process-wide JSON logger. Records carry structured
// attrs only, so lines stay machine-parseable in aggregation.
func Init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}

// WithRequestID stamps every record of the returned logger with the request
// id, keeping server-side lines correlatable with the response envelope.
func WithRequestID(id string) *slog.Logger {
	if id == "" {
		return Log
	}
	return Log.With("request_id", id)
}
