// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package fbgraph

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// MaxLogValueLength limits the length of log values to prevent log injection
// and excessive log file growth. Values longer than this are truncated.
const MaxLogValueLength = 1024

// Logger interface for pluggable logging support
//
// Implementations should use structured logging with key-value pairs.
// The go-fbgraph library provides two implementations:
//   - DefaultLogger: Wraps Go's standard log package with configurable log level
//   - NoOpLogger: Zero-overhead logging when disabled (default)
//
// Example custom logger integration:
//
//	type SlogAdapter struct {
//	    logger *slog.Logger
//	}
//
//	func (s *SlogAdapter) Debug(ctx context.Context, msg string, keysAndValues ...any) {
//	    s.logger.DebugContext(ctx, msg, keysAndValues...)
//	}
//	// ... implement other methods
//
//	client, _ := fbgraph.NewClient(fbgraph.WithLogger(&SlogAdapter{logger: slog.Default()}))
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}

// LogLevel represents the severity threshold for logging
type LogLevel int

const (
	// LogLevelDebug enables all log levels (most verbose)
	LogLevelDebug LogLevel = iota

	// LogLevelInfo enables Info, Warn, and Error logs
	LogLevelInfo

	// LogLevelWarn enables Warn and Error logs
	LogLevelWarn

	// LogLevelError enables only Error logs
	LogLevelError

	// LogLevelNone disables all logging
	LogLevelNone
)

// String returns the string representation of a LogLevel
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// DefaultLogger wraps Go's standard log package with configurable log level
//
// Log output format: [LEVEL] message key1=value1 key2=value2
type DefaultLogger struct {
	level LogLevel
}

// NewDefaultLogger creates a DefaultLogger with the specified log level
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return &DefaultLogger{level: level}
}

// Debug logs a debug message with structured key-value pairs
func (l *DefaultLogger) Debug(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelDebug, msg, keysAndValues...)
}

// Info logs an informational message with structured key-value pairs
func (l *DefaultLogger) Info(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message with structured key-value pairs
func (l *DefaultLogger) Warn(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelWarn, msg, keysAndValues...)
}

// Error logs an error message with structured key-value pairs
func (l *DefaultLogger) Error(_ context.Context, msg string, keysAndValues ...any) {
	l.log(LogLevelError, msg, keysAndValues...)
}

// sanitizeLogValue neutralizes control characters, ANSI escapes and
// zero-width or RTL-override runes, and truncates long values.
//
// Example:
//
//	Input: "user\n[ERROR] Fake attack message"
//	Output: "user [ERROR] Fake attack message"
func sanitizeLogValue(val any) string {
	str := fmt.Sprintf("%v", val)

	if len(str) > MaxLogValueLength {
		str = str[:MaxLogValueLength] + "...[TRUNCATED]"
	}

	var builder strings.Builder
	builder.Grow(len(str))

	for i := 0; i < len(str); {
		r, size := utf8.DecodeRuneInString(str[i:])
		i += size

		if r == utf8.RuneError && size <= 1 {
			builder.WriteRune('.')
			continue
		}

		switch {
		case r == 0x200B, r == 0x200C, r == 0x200D, r == 0xFEFF:
			// zero-width, dropped
		case r == 0x202E:
			builder.WriteRune(' ')
		case r == '\n', r == '\r', r == '\t', r == 0x0C:
			builder.WriteRune(' ')
		case r < 32 || r == 127:
			builder.WriteRune('.')
		default:
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// log formats and outputs a log message with structured key-value pairs
//
// Keys and values are sanitized. The message string is not, it comes from
// the library itself.
func (l *DefaultLogger) log(level LogLevel, msg string, keysAndValues ...any) {
	if l.level > level || level == LogLevelNone {
		return
	}

	var builder strings.Builder
	builder.Grow(len(msg) + 10 + len(keysAndValues)*25)

	builder.WriteString("[")
	builder.WriteString(level.String())
	builder.WriteString("] ")
	builder.WriteString(msg)

	for i := 0; i < len(keysAndValues); i += 2 {
		builder.WriteString(" ")
		builder.WriteString(sanitizeLogValue(keysAndValues[i]))

		if i+1 < len(keysAndValues) {
			builder.WriteString("=")
			builder.WriteString(sanitizeLogValue(keysAndValues[i+1]))
		} else {
			builder.WriteString("=<MISSING>")
		}
	}

	log.Println(builder.String())
}

// NoOpLogger is a no-operation logger that discards all log messages
//
// This is the default logger used by go-fbgraph when no custom logger
// is configured.
type NoOpLogger struct{}

// Debug discards the log message
func (n *NoOpLogger) Debug(_ context.Context, _ string, _ ...any) {}

// Info discards the log message
func (n *NoOpLogger) Info(_ context.Context, _ string, _ ...any) {}

// Warn discards the log message
func (n *NoOpLogger) Warn(_ context.Context, _ string, _ ...any) {}

// Error discards the log message
func (n *NoOpLogger) Error(_ context.Context, _ string, _ ...any) {}
