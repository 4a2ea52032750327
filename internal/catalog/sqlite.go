// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     catalog
// Description: SQLite implementation of the quiz catalog
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
)

// SQLiteStore is a SQLite-based quiz catalog
type SQLiteStore struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// SQLiteConfig holds SQLite store configuration
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default SQLite configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/quizzes.db",
	}
}

// NewSQLiteStore opens (and if needed creates) the catalog database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		cfg = DefaultSQLiteConfig()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, dbError(err, "failed to create catalog directory", "catalog.Open").WithDetail("path", cfg.Path)
	}

	// WAL mode lets readers proceed while a save is in progress
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, dbError(err, "failed to open catalog", "catalog.Open").WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db, path: cfg.Path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, dbError(err, "failed to initialize catalog schema", "catalog.Open").WithDetail("path", cfg.Path)
	}

	return store, nil
}

// Path returns the database file path
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		title TEXT,
		description TEXT,
		source_path TEXT NOT NULL DEFAULT '',
		question_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		quiz_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		text TEXT NOT NULL,
		answer INTEGER NOT NULL,
		difficulty TEXT,
		choices TEXT NOT NULL DEFAULT '[]',
		tags TEXT NOT NULL DEFAULT '[]',
		PRIMARY KEY (quiz_id, position),
		FOREIGN KEY (quiz_id) REFERENCES quizzes(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_quizzes_created ON quizzes(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save stores quiz in one transaction and returns its new ID
func (s *SQLiteStore) Save(ctx context.Context, quiz *ast.Quiz, sourcePath string) (string, error) {
	if quiz == nil {
		return "", qzerror.New("quiz is required").
			WithCode(qzerror.CodeInvalidInput).
			WithOperation("catalog.Save")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", dbError(err, "failed to begin transaction", "catalog.Save")
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO quizzes (id, title, description, source_path, question_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, nullString(quiz.Title), nullString(quiz.Description), sourcePath, len(quiz.Questions), time.Now().UTC())
	if err != nil {
		return "", dbError(err, "failed to insert quiz", "catalog.Save")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (quiz_id, position, text, answer, difficulty, choices, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", dbError(err, "failed to prepare question statement", "catalog.Save")
	}
	defer stmt.Close()

	for i, q := range quiz.Questions {
		choices, err := encodeList(q.Choices)
		if err != nil {
			return "", dbError(err, "failed to encode choices", "catalog.Save")
		}
		tags, err := encodeList(q.Tags)
		if err != nil {
			return "", dbError(err, "failed to encode tags", "catalog.Save")
		}
		if _, err := stmt.ExecContext(ctx, id, i, q.Text, q.Answer, nullString(q.Difficulty), choices, tags); err != nil {
			return "", dbError(err, "failed to insert question", "catalog.Save").WithDetail("position", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", dbError(err, "failed to commit quiz", "catalog.Save")
	}
	return id, nil
}

// Get retrieves a quiz by ID. The rebuilt tree is normalized.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, source_path, question_count, created_at
		FROM quizzes
		WHERE id = ?
	`, id)

	var title, description sql.NullString
	rec := &Record{Quiz: ast.New()}
	if err := row.Scan(&rec.ID, &title, &description, &rec.SourcePath, &rec.QuestionCount, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(id, "catalog.Get")
		}
		return nil, dbError(err, "failed to scan quiz", "catalog.Get")
	}
	rec.Quiz.Title = pointer(title)
	rec.Quiz.Description = pointer(description)
	rec.Title = title.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT text, answer, difficulty, choices, tags
		FROM questions
		WHERE quiz_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, dbError(err, "failed to query questions", "catalog.Get")
	}
	defer rows.Close()

	for rows.Next() {
		var q ast.Question
		var difficulty sql.NullString
		var choices, tags string
		if err := rows.Scan(&q.Text, &q.Answer, &difficulty, &choices, &tags); err != nil {
			return nil, dbError(err, "failed to scan question", "catalog.Get")
		}
		q.Difficulty = pointer(difficulty)
		if err := json.Unmarshal([]byte(choices), &q.Choices); err != nil {
			return nil, dbError(err, "failed to decode choices", "catalog.Get")
		}
		if err := json.Unmarshal([]byte(tags), &q.Tags); err != nil {
			return nil, dbError(err, "failed to decode tags", "catalog.Get")
		}
		rec.Quiz.Questions = append(rec.Quiz.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read questions", "catalog.Get")
	}

	rec.Quiz.Normalize()
	return rec, nil
}

// List returns every stored quiz, oldest first
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.querySummaries(ctx, "catalog.List", `
		SELECT id, title, source_path, question_count, created_at
		FROM quizzes
		ORDER BY created_at, id
	`)
}

// FindByTag returns the quizzes with at least one question tagged tag
func (s *SQLiteStore) FindByTag(ctx context.Context, tag string) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.querySummaries(ctx, "catalog.FindByTag", `
		SELECT z.id, z.title, z.source_path, z.question_count, z.created_at
		FROM quizzes z
		WHERE EXISTS (
			SELECT 1 FROM questions q, json_each(q.tags) t
			WHERE q.quiz_id = z.id AND t.value = ?
		)
		ORDER BY z.created_at, z.id
	`, tag)
}

func (s *SQLiteStore) querySummaries(ctx context.Context, operation, query string, args ...interface{}) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError(err, "failed to query quizzes", operation)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sum Summary
		var title sql.NullString
		if err := rows.Scan(&sum.ID, &title, &sum.SourcePath, &sum.QuestionCount, &sum.CreatedAt); err != nil {
			return nil, dbError(err, "failed to scan quiz", operation)
		}
		sum.Title = title.String
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err, "failed to read quizzes", operation)
	}
	return summaries, nil
}

// Delete removes a quiz and its questions
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return dbError(err, "failed to begin transaction", "catalog.Delete")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, id); err != nil {
		return dbError(err, "failed to delete questions", "catalog.Delete")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, id)
	if err != nil {
		return dbError(err, "failed to delete quiz", "catalog.Delete")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id, "catalog.Delete")
	}

	if err := tx.Commit(); err != nil {
		return dbError(err, "failed to commit delete", "catalog.Delete")
	}
	return nil
}

// Count returns the number of stored quizzes
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quizzes`).Scan(&count); err != nil {
		return 0, dbError(err, "failed to count quizzes", "catalog.Count")
	}
	return count, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dbError(err error, message, operation string) *qzerror.Error {
	return qzerror.Wrap(err, message).
		WithCode(qzerror.CodeDatabaseError).
		WithOperation(operation)
}

func notFound(id, operation string) *qzerror.Error {
	return qzerror.Newf("quiz not found: %s", id).
		WithCode(qzerror.CodeNotFound).
		WithOperation(operation).
		WithDetail("id", id)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func pointer(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return ast.StringPtr(ns.String)
}

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	return string(data), err
}

var _ Store = (*SQLiteStore)(nil)
