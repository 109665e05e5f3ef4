package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zlog is the process-wide logger. It stays a no-op until Init is called.
var Zlog = zap.NewNop()

// Init builds the logger for the given level and environment.
// "production" gets the JSON encoder, anything else the console encoder.
func Init(level, environment string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	Zlog = l
	return nil
}

// Sync flushes buffered entries, ignoring the error stdout/stderr sinks return.
func Sync() {
	_ = Zlog.Sync()
}
