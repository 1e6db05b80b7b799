package sysfetch

import (
	"io"
	"log/slog"
	"os"
)

// DefaultLogger logs to stderr in text format at Warn level, so a normal run
// prints nothing but the readout.
func DefaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// DebugLogger logs to stderr at Debug level, including source location. Every
// failed field and spawned probe is reported.
func DebugLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: true,
	}))
}

// JSONLogger returns a logger that writes JSON records to w.
func JSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NopLogger discards all records.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
