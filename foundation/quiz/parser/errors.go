// File: errors.go
// Title: Lexer and Parser Errors
// Description: Positioned error types returned by Tokenize and Parse.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial error types

package parser

import "fmt"

// LexError reports the first lexical problem in the source
type LexError struct {
	Message string
	Line    int
	Column  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Position returns the 1-based line and column of the error
func (e *LexError) Position() (int, int) {
	return e.Line, e.Column
}

// ParseError reports the first grammar violation in the token stream
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// Position returns the 1-based line and column of the error
func (e *ParseError) Position() (int, int) {
	return e.Line, e.Column
}
