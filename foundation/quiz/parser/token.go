// File: token.go
// Title: Quiz Token Definitions
// Description: Defines the closed set of token kinds produced by the lexer,
//              the Token value type and the keyword table.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial token definitions

package parser

import (
	"fmt"
)

// TokenType represents the kind of a lexical token
type TokenType int

const (
	// Keywords
	TokenQuiz TokenType = iota
	TokenTitle
	TokenDescription
	TokenQuestion
	TokenText
	TokenChoice
	TokenAnswer
	TokenDifficulty
	TokenTag

	// Delimiters
	TokenLBrace // {
	TokenRBrace // }
	TokenLParen // (
	TokenRParen // )
	TokenColon  // :
	TokenSemi   // ;
	TokenComma  // ,

	// Literals
	TokenString // "quoted", lexeme keeps the quotes
	TokenInt    // 42

	TokenEOF
)

var tokenNames = [...]string{
	TokenQuiz:        "QUIZ",
	TokenTitle:       "TITLE",
	TokenDescription: "DESCRIPTION",
	TokenQuestion:    "QUESTION",
	TokenText:        "TEXT",
	TokenChoice:      "CHOICE",
	TokenAnswer:      "ANSWER",
	TokenDifficulty:  "DIFFICULTY",
	TokenTag:         "TAG",
	TokenLBrace:      "LBRACE",
	TokenRBrace:      "RBRACE",
	TokenLParen:      "LPAREN",
	TokenRParen:      "RPAREN",
	TokenColon:       "COLON",
	TokenSemi:        "SEMI",
	TokenComma:       "COMMA",
	TokenString:      "STRING",
	TokenInt:         "INT",
	TokenEOF:         "EOF",
}

var tokenSymbols = [...]string{
	TokenQuiz:        "quiz",
	TokenTitle:       "title",
	TokenDescription: "description",
	TokenQuestion:    "question",
	TokenText:        "text",
	TokenChoice:      "choice",
	TokenAnswer:      "answer",
	TokenDifficulty:  "difficulty",
	TokenTag:         "tag",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenColon:       ":",
	TokenSemi:        ";",
	TokenComma:       ",",
}

// keywords maps source words to keyword kinds. It is never written after init.
var keywords = map[string]TokenType{
	"quiz":        TokenQuiz,
	"title":       TokenTitle,
	"description": TokenDescription,
	"question":    TokenQuestion,
	"text":        TokenText,
	"choice":      TokenChoice,
	"answer":      TokenAnswer,
	"difficulty":  TokenDifficulty,
	"tag":         TokenTag,
}

// String returns the upper-case kind name, e.g. "LBRACE"
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Describe returns the form used in diagnostics: 'quiz', '{', string literal,
// integer or end of input.
func (tt TokenType) Describe() string {
	switch tt {
	case TokenString:
		return "string literal"
	case TokenInt:
		return "integer"
	case TokenEOF:
		return "end of input"
	}
	if tt >= 0 && int(tt) < len(tokenSymbols) && tokenSymbols[tt] != "" {
		return "'" + tokenSymbols[tt] + "'"
	}
	return tt.String()
}

// IsKeyword reports whether tt is one of the nine keyword kinds
func (tt TokenType) IsKeyword() bool {
	return tt >= TokenQuiz && tt <= TokenTag
}

// LookupKeyword returns the keyword kind for word. Matching is case-sensitive.
func LookupKeyword(word string) (TokenType, bool) {
	tt, ok := keywords[word]
	return tt, ok
}

// Keywords returns the keyword spellings in kind order
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for tt := TokenQuiz; tt <= TokenTag; tt++ {
		out = append(out, tokenSymbols[tt])
	}
	return out
}

// Token is a lexical token with its 1-based source position
type Token struct {
	Kind   TokenType
	Lexeme string
	Line   int
	Column int
}

// String returns a representation such as STRING("\"Q\"")@2:9
func (t Token) String() string {
	if t.Kind == TokenEOF {
		return fmt.Sprintf("EOF@%d:%d", t.Line, t.Column)
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Lexeme, t.Line, t.Column)
}
