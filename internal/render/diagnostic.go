package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quizdsl/quizc/foundation/quiz/parser"
	"github.com/quizdsl/quizc/foundation/utils/stringx"
	"github.com/quizdsl/quizc/internal/tui"
)

// Diagnostic writes err for the source named name. Lexical and syntax
// errors show the offending line with a caret under the reported column:
//
//	capitals.quiz:2:9: parse error: expected ':' after 'title', got string literal
//	   2 |   title "Capitals";
//	     |         ^
//
// Any other error is written on a single line.
func Diagnostic(w io.Writer, name, source string, err error) error {
	if err == nil {
		return nil
	}
	s := tui.NewStyles(lipgloss.NewRenderer(w))

	kind, message, line, column, ok := positioned(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s %s\n", s.Error.Render("error:"), err.Error())
		return werr
	}

	if name == "" {
		name = "<input>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		s.Muted.Render(fmt.Sprintf("%s:%d:%d:", name, line, column)),
		s.Error.Render(kind+":"),
		message)

	if text, found := sourceLine(source, line); found {
		num := strconv.Itoa(line)
		pad := strings.Repeat(" ", len(num))
		fmt.Fprintf(&b, "%s %s\n", s.Gutter.Render(fmt.Sprintf("  %s |", num)), text)
		fmt.Fprintf(&b, "%s %s%s\n", s.Gutter.Render(fmt.Sprintf("  %s |", pad)), caretIndent(text, column), s.Error.Render("^"))
	}

	_, werr := io.WriteString(w, b.String())
	return werr
}

func positioned(err error) (kind, message string, line, column int, ok bool) {
	var lexErr *parser.LexError
	if errors.As(err, &lexErr) {
		return "lex error", lexErr.Message, lexErr.Line, lexErr.Column, true
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return "parse error", parseErr.Message, parseErr.Line, parseErr.Column, true
	}
	return "", "", 0, 0, false
}

// sourceLine returns the 1-based line n of source without its line ending
func sourceLine(source string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := stringx.SplitLines(source)
	if n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}

// caretIndent reproduces the first column-1 runes of text as blanks,
// keeping tabs so the caret lines up
func caretIndent(text string, column int) string {
	var b strings.Builder
	i := 1
	for _, r := range text {
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < column; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}
