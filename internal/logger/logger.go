// Package logger wraps zap with optional size-rotated file output.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes how to build the logger.
// Level is "debug" | "info" | "warn" | "error" (default "info").
// File, when set, receives JSON lines rotated by lumberjack.
type Config struct {
	Level   string
	DevMode bool
	File    string
}

func (c *Config) applyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func parseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("logger: invalid level %q: %w", level, err)
	}
	return lvl, nil
}

// Logger is a thin wrapper over *zap.Logger.
type Logger struct {
	raw *zap.Logger
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	cfg.applyDefaults()
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "ts"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.CallerKey = "caller"
	ec.EncodeCaller = zapcore.ShortCallerEncoder

	var console zapcore.Encoder
	if cfg.DevMode {
		dc := ec
		dc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		console = zapcore.NewConsoleEncoder(dc)
	} else {
		console = zapcore.NewJSONEncoder(ec)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stderr), lvl),
	}
	if cfg.File != "" {
		w := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    25,
			MaxBackups: 10,
			MaxAge:     14,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(ec), zapcore.AddSync(w), lvl))
	}

	zl := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &Logger{raw: zl}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{raw: zap.NewNop()}
}

// FromZap wraps an existing zap logger.
func FromZap(zl *zap.Logger) *Logger {
	return &Logger{raw: zl}
}

// Sync flushes buffers, ignoring errors.
func (l *Logger) Sync() { _ = l.raw.Sync() }

// Named creates a sub-logger with a name prefix.
func (l *Logger) Named(name string) *Logger {
	return &Logger{raw: l.raw.Named(name)}
}

// With returns a logger carrying the given fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{raw: l.raw.With(fields...)}
}

// Sugar returns a SugaredLogger for printf-style calls.
func (l *Logger) Sugar() *zap.SugaredLogger {
	return l.raw.Sugar()
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.raw.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.raw.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.raw.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.raw.Error(msg, fields...) }
