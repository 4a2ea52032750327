package logging

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quizdsl/quizc/foundation/core/config"
	qzlog "github.com/quizdsl/quizc/foundation/core/log"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("loader")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "loader" {
		t.Errorf("Name() = %v, want loader", logger.Name())
	}
	if logger.Foundation() == nil {
		t.Error("Foundation() returned nil")
	}
}

func TestKeyValueLogging(t *testing.T) {
	var buf bytes.Buffer
	base, _ := NewLogger(LoggerConfig{ServiceName: "quizc", Level: "debug", Format: "logfmt", Output: &buf})
	logger := Wrap(base, "loader").With("dir", "./quizzes")

	logger.Info("quiz loaded", "path", "a.quiz", "questions", 3)
	logger.Warn("odd call", "dangling")

	out := buf.String()
	for _, want := range []string{`logger=loader`, `message="quiz loaded"`, `dir="./quizzes"`, `path="a.quiz"`, `questions=3`, `!BADKEY="dangling"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogger_WithLevel(t *testing.T) {
	var buf bytes.Buffer
	base, _ := NewLogger(LoggerConfig{Level: "debug", Format: "text", Output: &buf})
	logger := Wrap(base, "x").WithLevel(LevelError)

	logger.Info("hidden")
	logger.Error("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestNewLoggerFallsBackOnBadNames(t *testing.T) {
	logger, closer := NewLogger(LoggerConfig{Level: "chatty", Format: "xml"})
	defer closer.Close()

	if logger.GetLevel() != qzlog.LevelInfo {
		t.Errorf("level = %v, want info", logger.GetLevel())
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	lc := DefaultLoggerConfig("loader")
	if lc.ServiceName != "loader" || lc.Level != "info" || lc.Format != "json" {
		t.Errorf("DefaultLoggerConfig() = %+v", lc)
	}
	if lc.Output != nil || lc.File != "" {
		t.Errorf("DefaultLoggerConfig() should leave output and file unset: %+v", lc)
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.LoadFromString(`
[log]
level = "debug"
format = "console"
file = "/tmp/quizc.log"
`, config.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	lc := FromConfig(cfg, "quizc")
	if lc.Level != "debug" || lc.Format != "console" || lc.File != "/tmp/quizc.log" || lc.ServiceName != "quizc" {
		t.Errorf("FromConfig() = %+v", lc)
	}

	empty := FromConfig(config.NewDefault("", nil), "quizc")
	if empty.Level != "info" || empty.Format != "json" || empty.File != "" {
		t.Errorf("FromConfig(empty) = %+v", empty)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quizc.log")
	var console bytes.Buffer

	logger, closer := NewLogger(LoggerConfig{ServiceName: "quizc", Level: "info", Format: "json", Output: &console, File: path})
	logger.Info("first")
	logger.Info("second")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Errorf("file contents = %q", data)
	}
	if !strings.Contains(console.String(), "second") {
		t.Error("console output lost when a file is configured")
	}
}

type memorySink struct {
	mu      sync.Mutex
	batches [][][]byte
	fail    bool
	closed  bool
}

func (s *memorySink) WriteBatch(_ context.Context, lines [][]byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return 0, errors.New("sink down")
	}
	s.batches = append(s.batches, lines)
	return len(lines), nil
}

func (s *memorySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *memorySink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func TestBatchWriterFlushesWhenFull(t *testing.T) {
	sink := &memorySink{}
	w := NewBatchWriter(BatchWriterConfig{Sink: sink, BatchSize: 2, FlushPeriod: time.Hour})
	defer w.Close()

	w.Write([]byte("a\n"))
	w.Write([]byte("b\n"))

	deadline := time.Now().Add(2 * time.Second)
	for sink.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if sink.count() != 2 {
		t.Errorf("sink received %d entries, want 2", sink.count())
	}
}

func TestBatchWriterCloseFlushesAndIsIdempotent(t *testing.T) {
	sink := &memorySink{}
	w := NewBatchWriter(BatchWriterConfig{Sink: sink, BatchSize: 100, FlushPeriod: time.Hour})

	buf := []byte("pending\n")
	w.Write(buf)
	buf[0] = 'X' // writer must have copied the line

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if sink.count() != 1 || string(sink.batches[0][0]) != "pending\n" || !sink.closed {
		t.Errorf("sink = %+v", sink)
	}
}

func TestBatchWriterCountsDropped(t *testing.T) {
	sink := &memorySink{fail: true}
	w := NewBatchWriter(BatchWriterConfig{Sink: sink})
	w.Write([]byte("lost\n"))
	w.Close()

	if w.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", w.Dropped())
	}
}
