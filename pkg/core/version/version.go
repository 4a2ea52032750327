// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     version
// Description: Central version information for quizc binaries
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Compiler is the quizc release
	Compiler = "0.1.0"

	// Language is the quiz source language revision accepted by the parser
	Language = "1.0.0"

	// CatalogSchema is the SQLite catalog schema revision
	CatalogSchema = "1.0.0"
)

// Set at build time with -ldflags "-X github.com/quizdsl/quizc/pkg/core/version.Commit=..."
var (
	Commit    = "dev"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a named component
func ComponentVersion(name string) string {
	switch name {
	case "language":
		return Language
	case "catalog":
		return CatalogSchema
	default:
		return Compiler
	}
}

// String returns a multi-line version report
func String() string {
	return fmt.Sprintf("quizc %s\n  language: %s\n  catalog schema: %s\n  commit: %s\n  built: %s\n  go: %s %s/%s\n",
		Compiler, Language, CatalogSchema, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
