// Package logging wraps zap behind package-level helpers so callers never
// carry a logger around. The default logger writes JSON at info level;
// InitLoggerFromEnv reconfigures it from LOG_LEVEL and LOG_FORMAT.
package logging

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop().Sugar()
)

func init() {
	l, err := build("info", "json")
	if err == nil {
		logger = l.Sugar()
	}
}

// InitLoggerFromEnv builds the process logger from LOG_LEVEL (debug, info,
// warn, error) and LOG_FORMAT (json, console) and installs it globally.
func InitLoggerFromEnv() (*zap.Logger, error) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	format := os.Getenv("LOG_FORMAT")
	if format == "" {
		format = "json"
	}

	l, err := build(level, format)
	if err != nil {
		return nil, err
	}
	SetLogger(l)
	return l, nil
}

func build(level, format string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(level)); err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	if strings.ToLower(format) == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return cfg.Build(zap.AddCallerSkip(1))
}

// SetLogger installs l as the global logger. Intended for tests and for
// InitLoggerFromEnv.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l.Sugar()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debugf(format string, args ...interface{}) { get().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { get().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { get().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { get().Errorf(format, args...) }

// Fatalf logs and exits the process.
func Fatalf(format string, args ...interface{}) { get().Fatalf(format, args...) }
