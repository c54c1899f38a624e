package vivaldi

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with vivaldi-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithNode adds a node field to the logger.
func (l *Logger) WithNode(node string) *Logger {
	return &Logger{
		Logger: l.Logger.With("node", node),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// LogObserve logs a single model update.
func (l *Logger) LogObserve(rtt time.Duration, sampleError, errorEstimate, height float64, err error) {
	if err != nil {
		l.Warn("observe rejected",
			"rtt", rtt,
			"error", err,
		)
		return
	}
	l.Debug("observe completed",
		"rtt", rtt,
		"sample_error", sampleError,
		"error_estimate", errorEstimate,
		"height", height,
	)
}

// LogRandomDirection logs the fallback taken when two coordinates coincide.
func (l *Logger) LogRandomDirection() {
	l.Debug("coordinates coincide, using random direction")
}

// LogReset logs a coordinate reset after the model produced invalid values.
func (l *Logger) LogReset(node string, resets int) {
	l.Warn("coordinate reset after invalid update",
		"remote", node,
		"resets", resets,
	)
}

// LogSnapshot logs a snapshot save or restore.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"op", op,
			"name", name,
		)
	}
}

// LogBatchUpdate logs a catalog batch flush.
func (l *Logger) LogBatchUpdate(ctx context.Context, written, discarded int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "coordinate batch update failed",
			"written", written,
			"error", err,
		)
	case discarded > 0:
		l.WarnContext(ctx, "discarded coordinate updates",
			"written", written,
			"discarded", discarded,
		)
	default:
		l.DebugContext(ctx, "coordinate batch update completed",
			"written", written,
		)
	}
}
