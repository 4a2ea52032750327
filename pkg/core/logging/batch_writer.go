// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     logging
// Description: Buffered log writer that ships entries to a sink in batches
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Sink receives batches of formatted log lines
type Sink interface {
	WriteBatch(ctx context.Context, lines [][]byte) (int, error)
	Close() error
}

// BatchWriterConfig holds configuration for a BatchWriter
type BatchWriterConfig struct {
	Sink        Sink
	BatchSize   int           // entries per batch (default: 100)
	FlushPeriod time.Duration // maximum delay before a flush (default: 5s)
}

// BatchWriter buffers log lines and flushes them to a Sink when the batch
// is full, on a timer, and on Close.
type BatchWriter struct {
	sink        Sink
	batchSize   int
	flushPeriod time.Duration

	buffer   [][]byte
	bufferMu sync.Mutex
	flushCh  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once

	dropped int
}

// NewBatchWriter creates a BatchWriter and starts its flush worker
func NewBatchWriter(cfg BatchWriterConfig) *BatchWriter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushPeriod <= 0 {
		cfg.FlushPeriod = 5 * time.Second
	}

	w := &BatchWriter{
		sink:        cfg.Sink,
		batchSize:   cfg.BatchSize,
		flushPeriod: cfg.FlushPeriod,
		buffer:      make([][]byte, 0, cfg.BatchSize),
		flushCh:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	go w.flushWorker()
	return w
}

// Write buffers one formatted entry. It never fails.
func (w *BatchWriter) Write(p []byte) (int, error) {
	line := bytes.Clone(p)

	w.bufferMu.Lock()
	w.buffer = append(w.buffer, line)
	shouldFlush := len(w.buffer) >= w.batchSize
	w.bufferMu.Unlock()

	if shouldFlush {
		select {
		case w.flushCh <- struct{}{}:
		default:
		}
	}
	return len(p), nil
}

func (w *BatchWriter) flushWorker() {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.flushPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			w.flush()
			return
		case <-w.flushCh:
			w.flush()
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *BatchWriter) flush() {
	w.bufferMu.Lock()
	if len(w.buffer) == 0 || w.sink == nil {
		w.bufferMu.Unlock()
		return
	}
	lines := w.buffer
	w.buffer = make([][]byte, 0, w.batchSize)
	w.bufferMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	written, err := w.sink.WriteBatch(ctx, lines)
	if err != nil {
		w.bufferMu.Lock()
		w.dropped += len(lines) - written
		w.bufferMu.Unlock()
	}
}

// Dropped returns how many entries the sink failed to accept
func (w *BatchWriter) Dropped() int {
	w.bufferMu.Lock()
	defer w.bufferMu.Unlock()
	return w.dropped
}

// Close flushes pending entries and closes the sink
func (w *BatchWriter) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		if w.sink != nil {
			err = w.sink.Close()
		}
	})
	return err
}

// FileSink appends batches to a file
type FileSink struct {
	mu   sync.Mutex
	file *os.File
}

// NewFileSink opens path for appending, creating parent directories
func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: f}, nil
}

// WriteBatch writes lines in order and returns how many were written
func (s *FileSink) WriteBatch(ctx context.Context, lines [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.file.Write(line); err != nil {
			return i, err
		}
	}
	return len(lines), nil
}

// Close closes the file
func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
