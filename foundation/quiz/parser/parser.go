// File: parser.go
// Title: Quiz Recursive Descent Parser
// Description: Builds a Quiz tree from a token stream. The grammar is LL(1):
//              one forward-only cursor, no backtracking, and the first
//              violation aborts with a positioned ParseError.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"
	"strconv"

	"github.com/quizdsl/quizc/foundation/quiz/ast"
)

// Options configures parser behavior
type Options struct {
	// DecodeStrings stores decoded string values in the tree instead of the
	// raw quoted lexemes.
	DecodeStrings bool
}

// Parser consumes a token slice. A Parser is single use.
type Parser struct {
	tokens  []Token
	pos     int
	options Options
}

// New creates a parser over tokens. Only the first Options value is used.
func New(tokens []Token, opts ...Options) *Parser {
	p := &Parser{tokens: tokens}
	if len(opts) > 0 {
		p.options = opts[0]
	}
	return p
}

// ParseTokens parses a token slice into a quiz
func ParseTokens(tokens []Token, opts ...Options) (*ast.Quiz, error) {
	return New(tokens, opts...).Parse()
}

// Parse tokenizes and parses source. The error is a *LexError or a *ParseError.
func Parse(source string, opts ...Options) (*ast.Quiz, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, opts...)
}

// Parse parses the whole token stream:
//
//	quiz := 'quiz' '{' quizHeader* question* '}'
func (p *Parser) Parse() (*ast.Quiz, error) {
	if _, err := p.expect(TokenQuiz, "at start of input"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace, "after 'quiz'"); err != nil {
		return nil, err
	}

	quiz := ast.New()
	if err := p.parseHeader(quiz); err != nil {
		return nil, err
	}

	for {
		kind := p.peek().Kind
		if kind == TokenRBrace || kind == TokenEOF {
			break
		}
		question, err := p.parseQuestion()
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if _, err := p.expect(TokenRBrace, "to close quiz block"); err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, p.errorAt(tok, "extra tokens after quiz block: %s", tok.Kind.Describe())
	}
	return quiz, nil
}

// parseHeader reads title and description statements in any order, each at
// most once. The first other token ends the header for good.
func (p *Parser) parseHeader(quiz *ast.Quiz) error {
	for {
		tok := p.peek()
		var slot **string
		switch tok.Kind {
		case TokenTitle:
			slot = &quiz.Title
		case TokenDescription:
			slot = &quiz.Description
		default:
			return nil
		}

		if *slot != nil {
			return p.errorAt(tok, "duplicate %s in quiz header", tok.Kind.Describe())
		}
		value, err := p.parseStringStatement()
		if err != nil {
			return err
		}
		*slot = ast.StringPtr(value)
	}
}

// parseQuestion parses
//
//	question := 'question' '{' questionField* '}'
func (p *Parser) parseQuestion() (ast.Question, error) {
	open, err := p.expect(TokenQuestion, "in quiz body")
	if err != nil {
		return ast.Question{}, err
	}
	if _, err := p.expect(TokenLBrace, "after 'question'"); err != nil {
		return ast.Question{}, err
	}

	question := ast.NewQuestion("", 0)
	var hasText, hasAnswer bool

	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenRBrace:
			if !hasText {
				return ast.Question{}, p.errorAt(tok, "question opened at line %d is missing 'text'", open.Line)
			}
			if !hasAnswer {
				return ast.Question{}, p.errorAt(tok, "question opened at line %d is missing 'answer'", open.Line)
			}
			p.next()
			return question, nil

		case TokenText:
			if hasText {
				return ast.Question{}, p.errorAt(tok, "duplicate 'text' in question block")
			}
			if question.Text, err = p.parseStringStatement(); err != nil {
				return ast.Question{}, err
			}
			hasText = true

		case TokenAnswer:
			if hasAnswer {
				return ast.Question{}, p.errorAt(tok, "duplicate 'answer' in question block")
			}
			if question.Answer, err = p.parseAnswer(); err != nil {
				return ast.Question{}, err
			}
			hasAnswer = true

		case TokenDifficulty:
			if question.Difficulty != nil {
				return ast.Question{}, p.errorAt(tok, "duplicate 'difficulty' in question block")
			}
			value, err := p.parseStringStatement()
			if err != nil {
				return ast.Question{}, err
			}
			question.Difficulty = ast.StringPtr(value)

		case TokenChoice:
			value, err := p.parseStringStatement()
			if err != nil {
				return ast.Question{}, err
			}
			question.Choices = append(question.Choices, value)

		case TokenTag:
			value, err := p.parseStringStatement()
			if err != nil {
				return ast.Question{}, err
			}
			question.Tags = append(question.Tags, value)

		case TokenEOF:
			_, err := p.expect(TokenRBrace, "to close question block")
			return ast.Question{}, err

		default:
			return ast.Question{}, p.errorAt(tok, "unexpected %s in question body", tok.Kind.Describe())
		}
	}
}

// parseStringStatement parses `keyword ':' STRING ';'` with the cursor on the keyword
func (p *Parser) parseStringStatement() (string, error) {
	keyword := p.next()
	name := keyword.Kind.Describe()

	if _, err := p.expect(TokenColon, "after "+name); err != nil {
		return "", err
	}
	value, err := p.expect(TokenString, "after "+name+" ':'")
	if err != nil {
		return "", err
	}
	if _, err := p.expect(TokenSemi, "after "+name+" value"); err != nil {
		return "", err
	}

	if p.options.DecodeStrings {
		return ast.Unquote(value.Lexeme), nil
	}
	return value.Lexeme, nil
}

// parseAnswer parses `'answer' ':' INT ';'` with the cursor on the keyword
func (p *Parser) parseAnswer() (int, error) {
	p.next()
	if _, err := p.expect(TokenColon, "after 'answer'"); err != nil {
		return 0, err
	}
	tok, err := p.expect(TokenInt, "after 'answer' ':'")
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(tok.Lexeme)
	if convErr != nil {
		return 0, p.errorAt(tok, "answer value %s is out of range", tok.Lexeme)
	}
	if _, err := p.expect(TokenSemi, "after 'answer' value"); err != nil {
		return 0, err
	}
	return n, nil
}

// peek returns the current token. Past the end of the slice it returns a
// synthetic EOF positioned at the last token, or at 1:1 for an empty slice.
func (p *Parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	if len(p.tokens) == 0 {
		return Token{Kind: TokenEOF, Line: 1, Column: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	return Token{Kind: TokenEOF, Line: last.Line, Column: last.Column}
}

// next returns the current token and moves past it
func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given kind or fails with
// "expected <kind> <context>, got <kind>".
func (p *Parser) expect(kind TokenType, context string) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return Token{}, p.errorAt(tok, "expected %s %s, got %s", kind.Describe(), context, tok.Kind.Describe())
	}
	return p.next(), nil
}

func (p *Parser) errorAt(tok Token, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}
