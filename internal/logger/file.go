package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/ordertouch/internal/models"
)

// FileLogger appends the diagnostic stream to a log file.
// The file is opened in append mode so successive sessions accumulate;
// nothing ever reads it back. It is thread-safe and supports log level filtering.
type FileLogger struct {
	path     string
	file     *os.File
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger opens (or creates) the log file at path with log level "info".
func NewFileLogger(path string) (*FileLogger, error) {
	return NewFileLoggerWithLevel(path, "info")
}

// NewFileLoggerWithLevel opens (or creates) the log file at path with the given level.
// Parent directories are created if they don't exist.
func NewFileLoggerWithLevel(path string, logLevel string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	fl := &FileLogger{
		path:     path,
		file:     file,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.write(fmt.Sprintf("=== ordertouch session started at %s ===\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// Path returns the path of the log file.
func (fl *FileLogger) Path() string {
	return fl.path
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.write(fmt.Sprintf("[%s] [%s] %s\n", fileTimestamp(), level, message))
}

// LogTouch logs the outcome of a single timestamp write.
// Format: "[ts] ✓ <path> -> <time>" or "[ts] ✗ Failed to set timestamps for <path>: <error>"
func (fl *FileLogger) LogTouch(result models.TouchResult) {
	if result.OK() {
		if !fl.shouldLog("debug") {
			return
		}
		fl.write(fmt.Sprintf("[%s] ✓ %s -> %s\n", fileTimestamp(), result.Path, result.Time.Format(time.RFC3339Nano)))
		return
	}

	if !fl.shouldLog("warn") {
		return
	}
	fl.write(fmt.Sprintf("[%s] ✗ Failed to set timestamps for %s: %v\n", fileTimestamp(), result.Path, result.Error))
}

// LogPassSummary logs the outcome of one pass over a root.
func (fl *FileLogger) LogPassSummary(report models.PassReport) {
	if !fl.shouldLog("info") {
		return
	}
	fl.write(formatPassSummary(fileTimestamp(), report, newColorScheme(false)))
}

// Close flushes and closes the log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return nil
	}

	fl.file.WriteString(fmt.Sprintf("=== ordertouch session ended at %s ===\n", time.Now().Format(time.RFC3339)))
	err := fl.file.Close()
	fl.file = nil
	return err
}

// write appends a pre-formatted message to the log file.
func (fl *FileLogger) write(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return
	}
	fl.file.WriteString(message)
}

// fileTimestamp returns the current time with date, since log files outlive a session.
func fileTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05.000")
}
