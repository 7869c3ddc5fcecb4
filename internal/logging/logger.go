// Package logging provides config-driven categorized logging for rickdex.
// Logging is controlled by debug_mode in the config file; when it is off every
// category logger is a no-op. Output goes to a file because the interactive
// view owns the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"rickdex/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryAPI    Category = "api"    // HTTP requests against the catalog API
	CategoryBrowse Category = "browse" // Filter, pagination and search state
	CategoryUI     Category = "ui"     // Interactive view events
)

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the root logger from cfg. It is safe to call again; the
// previous logger is synced and replaced.
func Initialize(c config.LoggingConfig) error {
	if !c.DebugMode {
		install(zap.NewNop(), c)
		return nil
	}

	level, err := zapcore.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Format == "console" || c.Format == "text" {
		zc.Encoding = "console"
	}

	out := c.File
	if out == "" {
		out = "stderr"
	} else if out != "stderr" && out != "stdout" {
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}

	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	install(logger, c)

	Get(CategoryBoot).Info("logging initialized",
		zap.String("level", level.String()),
		zap.String("output", out))
	return nil
}

// SetLogger installs l as the root logger with every category enabled.
// Intended for tests and embedding.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	install(l, config.LoggingConfig{DebugMode: true})
}

func install(l *zap.Logger, c config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()
	_ = root.Sync()
	root = l
	cfg = c
	loggers = make(map[Category]*zap.Logger)
}

// IsDebugMode returns whether logging is enabled at all.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns the logger for a category. Disabled categories get a no-op
// logger.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	mu.RLock()
	l, ok := loggers[category]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l = root.Named(string(category))
	loggers[category] = l
	return l
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return root.Sync()
}
