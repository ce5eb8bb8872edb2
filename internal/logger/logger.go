// Package logger holds the process-wide slog logger used by dscache and its
// library packages.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// OutputFormat selects the slog handler.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

var (
	// testOutput is used to capture log output during tests
	testOutput   io.Writer
	testOutputMu sync.Mutex
)

// Fields is a type alias for log fields to make the API cleaner
type Fields map[string]interface{}

var (
	logger       *slog.Logger
	currentLevel = new(slog.LevelVar)
)

// SetTestOutput sets the output writer for testing purposes
func SetTestOutput(w io.Writer) {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = w
}

// UnsetTestOutput resets the test output to nil
func UnsetTestOutput() {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	testOutput = nil
}

func getOutput() io.Writer {
	testOutputMu.Lock()
	defer testOutputMu.Unlock()
	if testOutput != nil {
		return testOutput
	}
	return os.Stderr
}

// ParseLevel maps debug, info, warn and error to slog levels. Unknown values mean info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// InitLogger initializes the global logger.
func InitLogger(logLevel string, format OutputFormat) {
	currentLevel.Set(ParseLevel(logLevel))
	SetOutputFormat(format)
}

// SetOutputFormat swaps the handler while keeping the current level.
func SetOutputFormat(format OutputFormat) {
	opts := &slog.HandlerOptions{Level: currentLevel}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(getOutput(), opts)
	} else {
		handler = slog.NewTextHandler(getOutput(), opts)
	}

	logger = slog.New(handler)
}

// SetLevel changes the level of the current logger.
func SetLevel(logLevel string) {
	currentLevel.Set(ParseLevel(logLevel))
}

// GetLogger returns the configured logger instance.
func GetLogger() *slog.Logger {
	if logger == nil {
		// Initialize with default settings if not already initialized
		InitLogger("info", FormatText)
	}
	return logger
}

// Info logs an info message.
func Info(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Info(msg, attrs...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	GetLogger().Info(fmt.Sprintf(format, args...))
}

// Debug logs a debug message (only shown when debug level is enabled).
func Debug(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Debug(msg, attrs...)
}

// DebugfWithFields logs a formatted debug message with fields.
func DebugfWithFields(fields Fields, format string, args ...interface{}) {
	GetLogger().Debug(fmt.Sprintf(format, args...), mergeFields(fields)...)
}

// Error logs an error message.
func Error(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Error(msg, attrs...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...Fields) {
	attrs := mergeFields(fields...)
	GetLogger().Warn(msg, attrs...)
}

// Success logs a success message as info with success indicator.
func Success(msg string, fields ...Fields) {
	allFields := mergeFields(fields...)
	allFields = append(allFields, "status", "success")
	GetLogger().Info(msg, allFields...)
}

// mergeFields merges multiple field maps into one slice of key-value pairs for slog.
// Later maps win on duplicate keys.
func mergeFields(fields ...Fields) []interface{} {
	merged := Fields{}
	order := []string{}
	for _, field := range fields {
		for k, v := range field {
			if _, ok := merged[k]; !ok {
				order = append(order, k)
			}
			merged[k] = v
		}
	}

	result := make([]interface{}, 0, len(order)*2)
	for _, k := range order {
		result = append(result, k, merged[k])
	}
	return result
}
