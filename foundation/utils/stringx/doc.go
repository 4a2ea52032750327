// File: doc.go
// Title: Package Documentation for stringx
// Description: Package documentation for the string helpers.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

// Package stringx provides the handful of Unicode-aware string helpers used
// across quizc: blank checks, rune-based truncation for log and diagnostic
// output, and line splitting that agrees with the quiz lexer's notion of a line.
package stringx
