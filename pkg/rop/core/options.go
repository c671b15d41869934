package core

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type OptionKey string

const (
	LoggerOptionKey OptionKey = "logger_options"
	RunOptionKey    OptionKey = "run_options"
)

type RunOptions struct {
	ID uuid.UUID
}

// WithLogger attaches a logger that chain runs started with ctx will use
// instead of their configured one.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, LoggerOptionKey, logger)
}

// Logger returns the logger stored in ctx, or defaultLogger when there is none.
func Logger(ctx context.Context, defaultLogger *slog.Logger) *slog.Logger {
	logger, ok := ctx.Value(LoggerOptionKey).(*slog.Logger)
	if ok && logger != nil {
		return logger
	}
	return defaultLogger
}

// WithRunID marks ctx as belonging to the run identified by id. Steps see it
// through RunID.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, RunOptionKey, RunOptions{ID: id})
}

// RunID returns the id of the run ctx belongs to. The second value is false
// outside of a run.
func RunID(ctx context.Context) (uuid.UUID, bool) {
	options, ok := ctx.Value(RunOptionKey).(RunOptions)
	if ok {
		return options.ID, true
	}
	return uuid.Nil, false
}
