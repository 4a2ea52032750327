// File: lexer.go
// Title: Quiz Lexical Analyzer
// Description: Converts quiz source text into a token stream with 1-based
//              line/column positions. Stops at the first lexical error.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans a single source string. A Lexer is not safe for concurrent
// use; create one per input.
type Lexer struct {
	input  string
	pos    int // byte offset of the next unread character
	line   int
	column int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		line:   1,
		column: 1,
	}
}

// Tokenize scans source and returns its tokens, terminated by an EOF token
func Tokenize(source string) ([]Token, error) {
	return NewLexer(source).Tokenize()
}

// Tokenize returns all remaining tokens. On error no tokens are returned.
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := make([]Token, 0, len(l.input)/4+1)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

// NextToken skips whitespace and comments and returns the next token.
// At end of input it keeps returning EOF.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Line: l.line, Column: l.column}, nil
	}

	ch := l.input[l.pos]

	if kind, ok := symbolKind(ch); ok {
		return l.emit(kind, 1), nil
	}

	switch {
	case ch == '"':
		return l.readString()
	case isDigit(ch):
		return l.readInt()
	case isIdentStart(ch):
		return l.readIdentifier()
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return Token{}, l.errorf("unexpected character %q", r)
}

// skipTrivia discards whitespace, line comments and block comments
func (l *Lexer) skipTrivia() error {
	for l.pos < len(l.input) {
		rest := l.input[l.pos:]
		switch {
		case isWhitespace(rest[0]):
			n := 1
			for n < len(rest) && isWhitespace(rest[n]) {
				n++
			}
			l.advance(n)
		case strings.HasPrefix(rest, "//"):
			n := strings.IndexByte(rest, '\n')
			if n < 0 {
				n = len(rest)
			}
			l.advance(n)
		case strings.HasPrefix(rest, "/*"):
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return l.errorf("unterminated block comment")
			}
			l.advance(end + 4)
		default:
			return nil
		}
	}
	return nil
}

// readString scans a double-quoted literal. The lexeme keeps its quotes and
// escape sequences untouched.
func (l *Lexer) readString() (Token, error) {
	i := l.pos + 1
	for i < len(l.input) {
		switch l.input[i] {
		case '"':
			return l.emit(TokenString, i+1-l.pos), nil
		case '\n':
			return Token{}, l.errorf("unterminated string literal")
		case '\\':
			if i+1 >= len(l.input) || l.input[i+1] == '\n' {
				return Token{}, l.errorf("unterminated string literal")
			}
			i += 2
		default:
			i++
		}
	}
	return Token{}, l.errorf("unterminated string literal")
}

func (l *Lexer) readInt() (Token, error) {
	n := 1
	for l.pos+n < len(l.input) && isDigit(l.input[l.pos+n]) {
		n++
	}
	if l.pos+n < len(l.input) {
		r, _ := utf8.DecodeRuneInString(l.input[l.pos+n:])
		if r == '_' || unicode.IsLetter(r) {
			return Token{}, l.errorf("malformed integer literal %q", l.wordAt(l.pos))
		}
	}
	return l.emit(TokenInt, n), nil
}

func (l *Lexer) readIdentifier() (Token, error) {
	n := 1
	for l.pos+n < len(l.input) && isIdentPart(l.input[l.pos+n]) {
		n++
	}
	word := l.input[l.pos : l.pos+n]
	kind, ok := LookupKeyword(word)
	if !ok {
		return Token{}, l.errorf("unknown identifier %q", word)
	}
	return l.emit(kind, n), nil
}

// emit builds a token from the next n bytes and consumes them
func (l *Lexer) emit(kind TokenType, n int) Token {
	tok := Token{
		Kind:   kind,
		Lexeme: l.input[l.pos : l.pos+n],
		Line:   l.line,
		Column: l.column,
	}
	l.advance(n)
	return tok
}

// advance consumes n bytes, updating line and column over the whole span.
// Columns count runes since the last newline.
func (l *Lexer) advance(n int) {
	span := l.input[l.pos : l.pos+n]
	if last := strings.LastIndexByte(span, '\n'); last >= 0 {
		l.line += strings.Count(span, "\n")
		l.column = 1 + utf8.RuneCountInString(span[last+1:])
	} else {
		l.column += utf8.RuneCountInString(span)
	}
	l.pos += n
}

// wordAt returns the run of letters, digits and underscores starting at offset
func (l *Lexer) wordAt(offset int) string {
	end := offset
	for end < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[end:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		end += size
	}
	return l.input[offset:end]
}

func (l *Lexer) errorf(format string, args ...interface{}) *LexError {
	return &LexError{
		Message: fmt.Sprintf(format, args...),
		Line:    l.line,
		Column:  l.column,
	}
}

func symbolKind(ch byte) (TokenType, bool) {
	switch ch {
	case '{':
		return TokenLBrace, true
	case '}':
		return TokenRBrace, true
	case '(':
		return TokenLParen, true
	case ')':
		return TokenRParen, true
	case ':':
		return TokenColon, true
	case ';':
		return TokenSemi, true
	case ',':
		return TokenComma, true
	}
	return 0, false
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
