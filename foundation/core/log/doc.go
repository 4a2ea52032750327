// Package log provides structured logging for quizc.
//
// Package: log
// Title: Structured Logging
// Description: Leveled, structured logging with context fields, four output
//              formats (JSON, text, console, logfmt), operation timers and
//              integration with the structured error type. The lexer and
//              parser never log; the engine facade, loader and CLI do.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation
//
// Usage:
//
//	import qzlog "github.com/quizdsl/quizc/foundation/core/log"
//
//	logger := qzlog.New().
//		WithLevel(qzlog.LevelDebug).
//		WithFormat(qzlog.FormatConsole).
//		WithName("loader")
//
//	logger.Info("quiz loaded", qzlog.Fields{"path": path, "questions": n})
//	logger.ErrorWithErr("compile failed", err)
//
//	timer := logger.StartTimer("compile")
//	// ... compile
//	timer.Stop()
package log
