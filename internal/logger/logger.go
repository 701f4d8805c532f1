// Package logger provides the diagnostic stream for ordertouch passes.
//
// Loggers are passed explicitly into the ordering core; there is no package
// level log handle. ConsoleLogger writes leveled, optionally colored lines to a
// terminal, FileLogger appends the same lines to a diagnostic log file, and
// MultiLogger fans out to several loggers at once.
package logger

import (
	"strings"

	"github.com/harrison/ordertouch/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the diagnostic stream consumed by the ordering core.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogTouch(result models.TouchResult)
	LogPassSummary(report models.PassReport)
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// IsValidLevel reports whether level names one of the supported log levels.
func IsValidLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	return normalized != "" && normalizeLogLevel(normalized) == normalized
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo // Default to info if unknown
	}
}

// MultiLogger implements Logger by delegating to multiple loggers
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are dropped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

func (ml *MultiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

func (ml *MultiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

func (ml *MultiLogger) LogTouch(result models.TouchResult) {
	for _, l := range ml.loggers {
		l.LogTouch(result)
	}
}

func (ml *MultiLogger) LogPassSummary(report models.PassReport) {
	for _, l := range ml.loggers {
		l.LogPassSummary(report)
	}
}

// NoOpLogger is a Logger implementation that discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(message string)                 {}
func (n *NoOpLogger) LogDebug(message string)                 {}
func (n *NoOpLogger) LogInfo(message string)                  {}
func (n *NoOpLogger) LogWarn(message string)                  {}
func (n *NoOpLogger) LogError(message string)                 {}
func (n *NoOpLogger) LogTouch(result models.TouchResult)      {}
func (n *NoOpLogger) LogPassSummary(report models.PassReport) {}
