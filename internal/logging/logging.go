// Package logging builds the zap logger used across the service.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-knock/internal/config"
)

// New builds a logger from cfg. The json format uses the zap production
// config, console the development config. verbose forces debug level.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if raw := strings.TrimSpace(cfg.Level); raw != "" {
		parsed, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, level, fmt.Errorf("logging: %w", err)
		}
		level.SetLevel(parsed)
	}
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}

	var zcfg zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
	default:
		return nil, level, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, level, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, level, nil
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
