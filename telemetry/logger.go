// Package telemetry implements NetGraph's ambient logging/tracing/metrics
// stack: structured logging via log/slog (optionally rotated through
// gopkg.in/natefinch/lumberjack.v2), plus OpenTelemetry tracing and metrics
// for the Monte Carlo Orchestrator and the Workflow Driver. Grounded on
// randalmurphal/flowgraph/pkg/flowgraph/observability (the
// MetricsRecorder/SpanManager/noop shape) and
// Hola-to-network_logistics_problem/pkg/{telemetry,logger} (the otel +
// lumberjack wiring).
package telemetry

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig configures the rotating file sink a run's Logger writes
// through, mirroring Hola-to-network_logistics_problem's log.max_size/
// max_backups/max_age/compress config keys.
type LogConfig struct {
	Level      string // "debug" | "info" | "warn" | "error"
	FilePath   string // empty disables file rotation; logs go to stderr only
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// NewLogger builds a *slog.Logger per cfg. With no FilePath it logs JSON to
// stderr; with a FilePath it additionally rotates through lumberjack, the
// way Hola-to-network_logistics_problem's logger ships file and console
// output together.
func NewLogger(cfg LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)
	var w io.Writer = os.Stderr
	if cfg.FilePath != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// WithRun enriches logger with run-scoped fields, the way
// flowgraph/observability.EnrichLogger attaches run/node identity to every
// subsequent record.
func WithRun(logger *slog.Logger, runID, stepName string) *slog.Logger {
	return logger.With(slog.String("run_id", runID), slog.String("step", stepName))
}

// WithIteration further enriches a run-scoped logger with a Monte Carlo
// iteration index, the unit of work flowgraph's EnrichLogger calls "node".
func WithIteration(logger *slog.Logger, index int) *slog.Logger {
	return logger.With(slog.Int("iteration", index))
}
