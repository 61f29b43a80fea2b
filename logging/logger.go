package logging

import (
	"log/slog"
	"maps"
	"os"
	"sync"
)

// Fields holds structured log fields
type Fields map[string]any

// Logger is the logging interface used throughout the library.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a debug message with optional fields
	Debug(msg string, fields ...Fields)

	// Info logs an informational message with optional fields
	Info(msg string, fields ...Fields)

	// Warn logs a warning message with optional fields
	Warn(msg string, fields ...Fields)

	// Error logs an error with a message and optional fields
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger that includes the given fields on every entry
	WithFields(fields Fields) Logger
}

// defaultLogger writes structured entries to stderr. Diagnostics must never
// reach stdout, which is reserved for extracted records.
type defaultLogger struct {
	logger *slog.Logger
	fields Fields
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewDefaultLogger()
)

// NewDefaultLogger creates a logger writing to stderr
func NewDefaultLogger() Logger {
	return &defaultLogger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
		fields: make(Fields),
	}
}

// GetGlobalLogger returns the process-wide logger
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// SetGlobalLogger replaces the process-wide logger
func SetGlobalLogger(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// WithFields returns the global logger with the given fields attached
func WithFields(fields Fields) Logger {
	return GetGlobalLogger().WithFields(fields)
}

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Fields) {
	GetGlobalLogger().Debug(msg, fields...)
}

// Info logs an informational message using the global logger
func Info(msg string, fields ...Fields) {
	GetGlobalLogger().Info(msg, fields...)
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Fields) {
	GetGlobalLogger().Warn(msg, fields...)
}

// Error logs an error using the global logger
func Error(err error, msg string, fields ...Fields) {
	GetGlobalLogger().Error(err, msg, fields...)
}

func (l *defaultLogger) Debug(msg string, fields ...Fields) {
	l.logger.Debug(msg, l.attrs(fields)...)
}

func (l *defaultLogger) Info(msg string, fields ...Fields) {
	l.logger.Info(msg, l.attrs(fields)...)
}

func (l *defaultLogger) Warn(msg string, fields ...Fields) {
	l.logger.Warn(msg, l.attrs(fields)...)
}

func (l *defaultLogger) Error(err error, msg string, fields ...Fields) {
	merged := l.merge(fields)
	if err != nil {
		merged["error"] = err.Error()
	}
	l.logger.Error(msg, flatten(merged)...)
}

func (l *defaultLogger) WithFields(fields Fields) Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	maps.Copy(merged, l.fields)
	maps.Copy(merged, fields)

	return &defaultLogger{
		logger: l.logger,
		fields: merged,
	}
}

func (l *defaultLogger) attrs(fields []Fields) []any {
	return flatten(l.merge(fields))
}

func (l *defaultLogger) merge(fields []Fields) Fields {
	merged := make(Fields, len(l.fields))
	maps.Copy(merged, l.fields)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	return merged
}

func flatten(fields Fields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
