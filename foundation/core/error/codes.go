// File: codes.go
// Title: Error Code Definitions
// Description: Defines the closed set of error codes used by quizc and the
//              helpers that classify them.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial code set

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Quiz front-end
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"
	CodeLexical       Code = "QUIZ_LEXICAL"
	CodeSyntax        Code = "QUIZ_SYNTAX"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage and file watching
	CodeDatabaseError Code = "DATABASE_ERROR"
	CodeWatchError    Code = "WATCH_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is one of the known codes
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeInputTooLarge, CodeLexical, CodeSyntax,
		CodeConfigError, CodeInvalidConfig,
		CodeDatabaseError, CodeWatchError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeInputTooLarge, CodeLexical, CodeSyntax:
		return "quiz"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeDatabaseError, CodeWatchError:
		return "storage"
	default:
		return "generic"
	}
}

// ExitStatus maps a code to the process exit status used by the CLI
func (c Code) ExitStatus() int {
	switch c.Category() {
	case "quiz":
		return 2
	case "configuration":
		return 3
	default:
		return 1
	}
}
