// File: doc.go
// Title: Quiz Parser Package Documentation
// Description: Package documentation for the quiz lexer and parser.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

/*
Package parser turns quiz source text into an ast.Quiz.

The work happens in two independent passes. The Lexer scans the source once
and produces Tokens with 1-based line and column positions, appending an EOF
token at the end. The Parser walks that slice with a single forward-only
cursor and builds the tree by recursive descent:

	quiz          := 'quiz' '{' quizHeader* question* '}'
	quizHeader    := ('title' | 'description') ':' STRING ';'
	question      := 'question' '{' questionField* '}'
	questionField := ('text' | 'choice' | 'difficulty' | 'tag') ':' STRING ';'
	               | 'answer' ':' INT ';'

Both passes stop at the first problem and return a *LexError or *ParseError
carrying the position of the offending character or token. Neither pass
performs I/O or logs; callers that want diagnostics wrap the errors.

Usage:

	tokens, err := parser.Tokenize(src)
	if err != nil {
		return err
	}
	quiz, err := parser.New(tokens, parser.Options{DecodeStrings: true}).Parse()

Parse(src) combines both steps.
*/
package parser
