// Package logging builds the zap loggers used by the unitconv commands and
// carries them through contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Config selects the level and encoding of a logger.
type Config struct {
	Level  string
	Format string // json or console
}

// New returns a production logger honouring cfg.
func New(cfg Config) (*zap.Logger, error) {
	return NewWith(func(zc *zap.Config) error {
		level, err := zapcore.ParseLevel(orDefault(cfg.Level, "info"))
		if err != nil {
			return err
		}
		zc.Level.SetLevel(level)
		if cfg.Format == "console" {
			zc.Encoding = "console"
			zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		}
		return nil
	})
}

// NewWith returns a logger from a modified production zap.Config.
func NewWith(cfgFn func(*zap.Config) error) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	if cfgFn != nil {
		if err := cfgFn(&cfg); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}

// NewWriter logs console-encoded entries at level to w. Terminal front ends
// use it so log lines stay off the interactive screen.
func NewWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(w),
		level,
	))
}

// Test returns a logger that writes through tb.
func Test(tb testing.TB) *zap.Logger {
	tb.Helper()
	return zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

type contextKey struct{}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return zap.NewNop()
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
