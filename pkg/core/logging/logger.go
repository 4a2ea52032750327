// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     logging
// Description: Key/value logger used by application packages
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"

	qzlog "github.com/quizdsl/quizc/foundation/core/log"
)

// Level represents log severity for the key/value API
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) foundation() qzlog.Level {
	switch l {
	case LevelDebug:
		return qzlog.LevelDebug
	case LevelWarn:
		return qzlog.LevelWarn
	case LevelError:
		return qzlog.LevelError
	default:
		return qzlog.LevelInfo
	}
}

// Logger wraps the foundation logger with a key/value call style:
//
//	logger.Info("quiz loaded", "path", path, "questions", n)
type Logger struct {
	*qzlog.Logger
	name string
}

// New creates a logger named name using the default configuration
func New(name string) *Logger {
	return Wrap(NewSimpleLogger(name), name)
}

// Wrap adapts an existing foundation logger
func Wrap(base *qzlog.Logger, name string) *Logger {
	if base == nil {
		base = qzlog.GetDefault()
	}
	return &Logger{Logger: base.WithName(name), name: name}
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{Logger: l.Logger.WithLevel(level.foundation()), name: l.name}
}

// With returns a logger that adds the key/value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.WithFields(toFields(keysAndValues...)), name: l.name}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// Foundation returns the underlying structured logger
func (l *Logger) Foundation() *qzlog.Logger {
	return l.Logger
}

// toFields pairs up keys and values. A trailing key without a value is
// logged under "!BADKEY".
func toFields(keysAndValues ...interface{}) qzlog.Fields {
	fields := make(qzlog.Fields, len(keysAndValues)/2+1)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		if i+1 >= len(keysAndValues) {
			fields["!BADKEY"] = key
			break
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
