// File: logger_test.go
// Title: Logger Tests
// Description: Tests for levels, formats, context fields, timers and
//              structured error logging.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test implementation

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
)

func newTestLogger(buf *bytes.Buffer, format Format, level Level) *Logger {
	return NewWithConfig(Config{Level: level, Format: format, Output: buf})
}

func decodeLine(t *testing.T, line []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(line), &m); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return m
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":    FormatJSON,
		"Text":    FormatText,
		"console": FormatConsole,
		"logfmt":  FormatLogfmt,
	}
	for input, want := range tests {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) should fail")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatText, LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if !logger.IsLevelEnabled(LevelError) || logger.IsLevelEnabled(LevelInfo) {
		t.Error("IsLevelEnabled disagrees with the configured level")
	}

	logger.SetLevel(LevelDebug)
	if logger.GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v, want debug", logger.GetLevel())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatJSON, LevelDebug).
		WithName("engine").
		WithRequestID("req-7").
		WithField("source", "demo.quiz")

	logger.Info("quiz compiled", Fields{"questions": 3})

	m := decodeLine(t, buf.Bytes())
	want := map[string]interface{}{
		"level":      "info",
		"message":    "quiz compiled",
		"logger":     "engine",
		"request_id": "req-7",
		"source":     "demo.quiz",
		"questions":  float64(3),
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s = %v, want %v", k, m[k], v)
		}
	}
}

func TestWithDoesNotMutateReceiver(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, FormatJSON, LevelInfo)
	_ = base.WithField("extra", true).WithName("child").WithLevel(LevelError)

	base.Info("plain")
	m := decodeLine(t, buf.Bytes())
	if _, ok := m["extra"]; ok {
		t.Error("WithField leaked into the parent logger")
	}
	if _, ok := m["logger"]; ok {
		t.Error("WithName leaked into the parent logger")
	}
}

func TestTextAndLogfmtSortFields(t *testing.T) {
	entry := NewEntry(LevelInfo, "loaded")
	entry.Fields = Fields{"b": 2, "a": "x", "c": 3}

	text, _ := (&TextFormatter{DisableTimestamp: true}).Format(entry)
	if got := string(text); got != "[INF] loaded [a=x b=2 c=3]\n" {
		t.Errorf("text = %q", got)
	}

	logfmt, _ := NewLogfmtFormatter().Format(entry)
	if !strings.Contains(string(logfmt), `message="loaded" a="x" b=2 c=3`) {
		t.Errorf("logfmt = %q", logfmt)
	}
}

func TestConsoleFormatterWithoutColors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableColors = true
	f.DisableTimestamp = true

	out, err := f.Format(NewEntry(LevelWarn, "skipped file"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[WRN] skipped file\n" {
		t.Errorf("console = %q", out)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatJSON, LevelTrace)

	err := qzerror.New("expected ':' after 'title'").
		WithCode(qzerror.CodeSyntax).
		WithDetail("line", 1)
	logger.LogError(err)

	m := decodeLine(t, buf.Bytes())
	if m["level"] != "warn" {
		t.Errorf("level = %v, want warn for a low severity error", m["level"])
	}
	if m["error_code"] != "QUIZ_SYNTAX" {
		t.Errorf("error_code = %v", m["error_code"])
	}
	if m["line"] != float64(1) {
		t.Errorf("line = %v, want 1", m["line"])
	}

	buf.Reset()
	logger.LogError(errors.New("plain failure"))
	if m := decodeLine(t, buf.Bytes()); m["level"] != "error" {
		t.Errorf("plain error level = %v, want error", m["level"])
	}

	buf.Reset()
	logger.LogError(nil)
	if buf.Len() != 0 {
		t.Error("LogError(nil) should not write")
	}
}

func TestTimer(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatJSON, LevelDebug)

	timer := logger.StartTimer("compile").WithField("path", "a.quiz")
	time.Sleep(time.Millisecond)
	if !timer.IsRunning() {
		t.Fatal("timer should be running")
	}
	if d := timer.Stop(); d <= 0 {
		t.Errorf("Stop() = %v, want > 0", d)
	}
	if d := timer.Stop(); d != 0 {
		t.Errorf("second Stop() = %v, want 0", d)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	m := decodeLine(t, []byte(lines[0]))
	if m["message"] != "compile completed" || m["path"] != "a.quiz" || m["success"] != true {
		t.Errorf("unexpected timer entry: %v", m)
	}
	if _, ok := m["duration_ms"]; !ok {
		t.Error("timer entry should carry duration_ms")
	}
}

func TestTimerStopWithErrorRaisesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatJSON, LevelWarn)

	logger.StartTimer("compile").StopWithError(errors.New("unexpected character"))

	m := decodeLine(t, buf.Bytes())
	if m["level"] != "warn" || m["message"] != "compile failed" {
		t.Errorf("unexpected entry: %v", m)
	}
	if m["error"] != "unexpected character" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestErrorLevelsCarryTheError(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatJSON, LevelDebug)

	logger.WarnWithErr("skipped file", errors.New("permission denied"), Fields{"path": "a.quiz"})
	logger.ErrorWithErr("flush failed", errors.New("disk full"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	warn := decodeLine(t, []byte(lines[0]))
	if warn["level"] != "warn" || warn["error"] != "permission denied" || warn["path"] != "a.quiz" {
		t.Errorf("unexpected warn entry: %v", warn)
	}
	failed := decodeLine(t, []byte(lines[1]))
	if failed["level"] != "error" || failed["message"] != "flush failed" || failed["error"] != "disk full" {
		t.Errorf("unexpected error entry: %v", failed)
	}
}

func TestWithFormatter(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf, FormatJSON, LevelInfo)
	text := base.WithFormatter(&TextFormatter{DisableTimestamp: true})

	text.Info("loaded", Fields{"count": 2})
	if got := buf.String(); !strings.HasPrefix(got, "[INF]") || !strings.HasSuffix(got, "loaded [count=2]\n") {
		t.Errorf("text output = %q", got)
	}

	buf.Reset()
	base.Info("loaded")
	decodeLine(t, buf.Bytes())
}

func TestTimerElapsed(t *testing.T) {
	var buf bytes.Buffer
	timer := newTestLogger(&buf, FormatJSON, LevelInfo).StartTimer("watch")

	time.Sleep(2 * time.Millisecond)
	if d := timer.Elapsed(); d < 2*time.Millisecond {
		t.Errorf("Elapsed() = %v, want >= 2ms", d)
	}
	if buf.Len() != 0 {
		t.Errorf("Elapsed() should not log, got %q", buf.String())
	}
	timer.Stop()
}

func TestConcurrentWritesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, FormatJSON, LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.WithField("worker", i).Info("tick")
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 20 {
		t.Fatalf("got %d lines, want 20", len(lines))
	}
	for _, line := range lines {
		decodeLine(t, []byte(line))
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(newTestLogger(&buf, FormatText, LevelInfo))
	Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("default logger output = %q", buf.String())
	}

	SetDefault(nil)
	if GetDefault() == nil {
		t.Error("SetDefault(nil) must not clear the default logger")
	}
}
