// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     catalog
// Description: Persistent catalog of compiled quizzes
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"time"

	"github.com/quizdsl/quizc/foundation/quiz/ast"
)

// Summary describes a stored quiz without its questions
type Summary struct {
	ID            string
	Title         string // empty when the quiz has no title
	SourcePath    string
	QuestionCount int
	CreatedAt     time.Time
}

// Record is a stored quiz together with its tree
type Record struct {
	Summary
	Quiz *ast.Quiz
}

// Store is the interface for quiz catalogs
type Store interface {
	// Save stores a compiled quiz and returns its new ID
	Save(ctx context.Context, quiz *ast.Quiz, sourcePath string) (string, error)

	// Get retrieves a quiz by ID
	Get(ctx context.Context, id string) (*Record, error)

	// List returns every stored quiz, oldest first
	List(ctx context.Context) ([]Summary, error)

	// FindByTag returns the quizzes with at least one question carrying tag
	FindByTag(ctx context.Context, tag string) ([]Summary, error)

	// Delete removes a quiz and its questions
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored quizzes
	Count(ctx context.Context) (int64, error)

	// Close closes the store
	Close() error
}
