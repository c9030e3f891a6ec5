// Package logging builds the process slog.Logger and carries request-scoped
// loggers through contexts.
//
//	logger := logging.New(logging.Config{Level: "info"})
//	slog.SetDefault(logger)
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"briefly/internal/handler/http/requestid"
)

// Config selects level and output format.
type Config struct {
	// Level is debug, info, warn or error. Anything else means info.
	Level string `yaml:"level" env:"LOG_LEVEL"`
	// Format is json (default) or text.
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

func ParseLevel(level string) slog.Level {
	var l slog.Level
	switch s := strings.ToLower(strings.TrimSpace(level)); s {
	case "warning":
		return slog.LevelWarn
	case "debug", "info", "warn", "error":
		_ = l.UnmarshalText([]byte(s))
		return l
	default:
		return slog.LevelInfo
	}
}

// New writes to stdout.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter writes to w. Debug level also records source locations.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithRequestID adds the request_id attribute when ctx carries one.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := requestid.FromContext(ctx); id != "" {
		return logger.With(slog.String("request_id", id))
	}
	return logger
}

type loggerKey struct{}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}
