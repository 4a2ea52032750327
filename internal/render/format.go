// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     render
// Description: Output formats for compiled quizzes, tokens and diagnostics
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package render

import (
	"fmt"
	"strings"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
)

// Format selects an output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	// FormatQuiz re-emits quiz source in canonical layout
	FormatQuiz Format = "quiz"
)

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatQuiz}
}

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "quiz", "source":
		return FormatQuiz, nil
	default:
		return "", qzerror.Newf("unknown output format %q", name).
			WithCode(qzerror.CodeInvalidInput).
			WithOperation("render.ParseFormat").
			WithDetail("supported", fmt.Sprint(Formats()))
	}
}
