// File: quiz.go
// Title: Quiz Compilation Engine
// Description: High-level API that ties the lexer and parser together,
//              applies the input-size guard, logs each compilation and
//              converts lexer/parser failures into structured errors.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial engine implementation

package quiz

import (
	"errors"
	"os"

	"github.com/google/uuid"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	qzlog "github.com/quizdsl/quizc/foundation/core/log"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/foundation/quiz/parser"
)

// DefaultMaxInputLength is the input-size guard used when Options leaves it unset
const DefaultMaxInputLength = 1 << 20

// Options configures the engine
type Options struct {
	// Logger receives compile diagnostics (optional, defaults to the default logger)
	Logger *qzlog.Logger

	// MaxInputLength rejects larger sources before scanning (default 1 MiB)
	MaxInputLength int

	// DecodeStrings stores decoded string values instead of raw lexemes
	DecodeStrings bool
}

// Engine compiles quiz sources. It holds no per-call state and is safe
// for concurrent use.
type Engine struct {
	logger  *qzlog.Logger
	options Options
}

// NewEngine creates an engine, filling in defaults for unset options
func NewEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = qzlog.GetDefault()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	return &Engine{
		logger:  opts.Logger.WithField("component", "quiz-engine"),
		options: opts,
	}
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.options
}

// Tokenize scans source into tokens
func (e *Engine) Tokenize(source string) ([]parser.Token, error) {
	requestID := uuid.NewString()
	if err := e.checkSize(len(source), "quiz.Tokenize", requestID); err != nil {
		return nil, err
	}

	tokens, err := parser.Tokenize(source)
	if err != nil {
		return nil, e.wrap(err, "tokenize quiz", "quiz.Tokenize", requestID)
	}
	return tokens, nil
}

// Compile tokenizes and parses source into a quiz
func (e *Engine) Compile(source string) (*ast.Quiz, error) {
	return e.compile(source, "", "quiz.Compile", uuid.NewString())
}

// CompileNamed compiles source that was read from path. The path only
// labels log entries and errors.
func (e *Engine) CompileNamed(path, source string) (*ast.Quiz, error) {
	return e.compile(source, path, "quiz.CompileNamed", uuid.NewString())
}

// CompileFile reads a UTF-8 source file and compiles it
func (e *Engine) CompileFile(path string) (*ast.Quiz, error) {
	requestID := uuid.NewString()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fileError(err, path, requestID)
	}
	if err := e.checkSize(int(info.Size()), "quiz.CompileFile", requestID); err != nil {
		return nil, err.WithDetail("path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(err, path, requestID)
	}
	return e.compile(string(data), path, "quiz.CompileFile", requestID)
}

func (e *Engine) compile(source, path, operation, requestID string) (*ast.Quiz, error) {
	logger := e.logger.WithRequestID(requestID)
	if path != "" {
		logger = logger.WithField("path", path)
	}

	if err := e.checkSize(len(source), operation, requestID); err != nil {
		logger.LogError(err)
		return nil, err
	}

	timer := logger.StartTimer("compile").WithField("bytes", len(source))

	tokens, err := parser.Tokenize(source)
	if err != nil {
		wrapped := e.wrap(err, "compile quiz", operation, requestID)
		if path != "" {
			wrapped = wrapped.WithDetail("path", path)
		}
		timer.StopWithError(err)
		return nil, wrapped
	}
	logger.Trace("tokenized", qzlog.Fields{"tokens": len(tokens)})

	quiz, err := parser.New(tokens, parser.Options{DecodeStrings: e.options.DecodeStrings}).Parse()
	if err != nil {
		wrapped := e.wrap(err, "compile quiz", operation, requestID)
		if path != "" {
			wrapped = wrapped.WithDetail("path", path)
		}
		timer.StopWithError(err)
		return nil, wrapped
	}

	timer.WithField("questions", len(quiz.Questions)).Stop()
	return quiz, nil
}

func (e *Engine) checkSize(n int, operation, requestID string) *qzerror.Error {
	if n <= e.options.MaxInputLength {
		return nil
	}
	return qzerror.Newf("input exceeds maximum length: %d > %d", n, e.options.MaxInputLength).
		WithCode(qzerror.CodeInputTooLarge).
		WithOperation(operation).
		WithRequestID(requestID).
		WithDetail("length", n).
		WithDetail("max_length", e.options.MaxInputLength)
}

// wrap converts a *parser.LexError or *parser.ParseError into a structured
// error carrying its code and position.
func (e *Engine) wrap(err error, message, operation, requestID string) *qzerror.Error {
	code := qzerror.CodeInternal
	var (
		lexErr   *parser.LexError
		parseErr *parser.ParseError
		line     int
		column   int
	)
	switch {
	case errors.As(err, &lexErr):
		code = qzerror.CodeLexical
		line, column = lexErr.Position()
	case errors.As(err, &parseErr):
		code = qzerror.CodeSyntax
		line, column = parseErr.Position()
	}

	wrapped := qzerror.Wrap(err, message).
		WithCode(code).
		WithOperation(operation).
		WithRequestID(requestID)
	if line > 0 {
		wrapped = wrapped.WithDetails(map[string]interface{}{"line": line, "column": column})
	}
	return wrapped
}

func fileError(err error, path, requestID string) error {
	code := qzerror.CodeInvalidInput
	if errors.Is(err, os.ErrNotExist) {
		code = qzerror.CodeNotFound
	}
	return qzerror.Wrap(err, "read quiz file").
		WithCode(code).
		WithOperation("quiz.CompileFile").
		WithRequestID(requestID).
		WithDetail("path", path)
}

// Position returns the source position carried by a lexer or parser error,
// looking through any wrapping.
func Position(err error) (line, column int, ok bool) {
	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Line, lexErr.Column, true
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Line, parseErr.Column, true
	}
	return 0, 0, false
}

// Compile compiles source with default options and raw string values
func Compile(source string) (*ast.Quiz, error) {
	return NewEngine(Options{}).Compile(source)
}
