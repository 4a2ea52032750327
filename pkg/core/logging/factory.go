// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     logging
// Description: Factory functions that build loggers from settings
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"time"

	"github.com/quizdsl/quizc/foundation/core/config"
	qzlog "github.com/quizdsl/quizc/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// ServiceName becomes the logger name
	ServiceName string

	// Level: trace, debug, info, warn, error (default: info)
	Level string

	// Format: json, text, console or logfmt (default: json)
	Format string

	// Output defaults to os.Stderr
	Output io.Writer

	// File, when set, also receives every entry through a BatchWriter
	File string

	// AdditionalOutputs receive a copy of every entry
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a foundation logger. Unknown level or format names fall
// back to info and json. The returned closer flushes and closes the log file
// and is never nil.
func NewLogger(cfg LoggerConfig) (*qzlog.Logger, io.Closer) {
	level, err := qzlog.ParseLevel(cfg.Level)
	if err != nil {
		level = qzlog.LevelInfo
	}
	format, err := qzlog.ParseFormat(cfg.Format)
	if err != nil {
		format = qzlog.FormatJSON
	}

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		output = io.MultiWriter(append([]io.Writer{output}, cfg.AdditionalOutputs...)...)
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if sink, err := NewFileSink(cfg.File); err == nil {
			bw := NewBatchWriter(BatchWriterConfig{
				Sink:        sink,
				BatchSize:   100,
				FlushPeriod: 2 * time.Second,
			})
			closer = bw
			logger := qzlog.NewWithConfig(qzlog.Config{
				Level:  level,
				Format: format,
				Output: io.MultiWriter(output, bw),
				Name:   cfg.ServiceName,
			})
			return logger, closer
		}
	}

	return qzlog.NewWithConfig(qzlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.ServiceName,
	}), closer
}

// FromConfig builds a LoggerConfig from the log.* keys of cfg
func FromConfig(cfg *config.Config, serviceName string) LoggerConfig {
	lc := DefaultLoggerConfig(serviceName)
	lc.Level = cfg.GetString("log.level", lc.Level)
	lc.Format = cfg.GetString("log.format", lc.Format)
	lc.File = cfg.GetString("log.file")
	return lc
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *qzlog.Logger {
	logger, _ := NewLogger(DefaultLoggerConfig(serviceName))
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
