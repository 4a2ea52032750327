// File: timer.go
// Title: Operation Timer
// Description: Measures how long an operation takes and logs the result
//              through the owning logger.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package log

import (
	"time"
)

// Timer measures the duration of a single operation
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to the completion message
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop logs the elapsed time and returns it. A second Stop returns 0 and logs nothing.
func (t *Timer) Stop() time.Duration {
	return t.finish(nil)
}

// StopWithError is Stop for a failed operation. The entry is logged at warn
// level or higher and carries the error.
func (t *Timer) StopWithError(err error) time.Duration {
	return t.finish(err)
}

// IsRunning reports whether Stop has not been called yet
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) finish(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true
	elapsed := t.Elapsed()

	if t.logger == nil {
		return elapsed
	}

	level := t.level
	message := t.operation + " completed"
	fields := t.fields.Merge(Fields{"operation": t.operation, "success": err == nil})
	if err != nil {
		message = t.operation + " failed"
		if level < LevelWarn {
			level = LevelWarn
		}
	}

	t.logger.mutex.RLock()
	enabled := level.IsEnabled(t.logger.level)
	t.logger.mutex.RUnlock()
	if !enabled {
		return elapsed
	}

	entry := NewEntry(level, message)
	entry.Duration = elapsed
	entry.Error = err

	t.logger.mutex.RLock()
	entry.Logger = t.logger.name
	entry.RequestID = t.logger.requestID
	for k, v := range t.logger.contextFields {
		entry.Fields[k] = v
	}
	formatter, output, writeMu := t.logger.formatter, t.logger.output, t.logger.writeMu
	t.logger.mutex.RUnlock()

	for k, v := range fields {
		entry.Fields[k] = v
	}
	t.logger.write(formatter, output, writeMu, entry)

	return elapsed
}
