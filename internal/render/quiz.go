package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/internal/tui"
)

// Quiz writes q to w in the given format. FormatQuiz expects decoded
// string values.
func Quiz(w io.Writer, q *ast.Quiz, format Format) error {
	if q == nil {
		return qzerror.New("nothing to render").WithCode(qzerror.CodeInvalidInput)
	}

	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(q)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(q)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(q)
	case FormatQuiz:
		_, err = io.WriteString(w, Source(q))
	case FormatText, "":
		err = quizText(w, q)
	default:
		_, err = ParseFormat(string(format))
		return err
	}

	if err != nil {
		return qzerror.Wrap(err, "failed to render quiz").WithDetail("format", string(format))
	}
	return nil
}

func quizText(w io.Writer, q *ast.Quiz) error {
	s := tui.NewStyles(lipgloss.NewRenderer(w))
	var b strings.Builder

	b.WriteString(s.Title.Render(q.TitleOr("(untitled quiz)")))
	b.WriteString("\n")
	if q.Description != nil {
		b.WriteString(s.Subtitle.Render(*q.Description))
		b.WriteString("\n")
	}

	for i, question := range q.Questions {
		fmt.Fprintf(&b, "\n%d. %s", i+1, question.Text)
		if question.Difficulty != nil {
			b.WriteString(" " + s.Accent.Render("["+*question.Difficulty+"]"))
		}
		if len(question.Tags) > 0 {
			b.WriteString(" " + s.Muted.Render("#"+strings.Join(question.Tags, " #")))
		}
		b.WriteString("\n")

		for j, choice := range question.Choices {
			line := fmt.Sprintf("   %c) %s", choiceLabel(j), choice)
			if j == question.Answer {
				line = s.Correct.Render(line + "  *")
			}
			b.WriteString(line + "\n")
		}
		if !question.AnswerInRange() {
			b.WriteString(s.Wrong.Render(fmt.Sprintf("   answer %d has no matching choice", question.Answer)) + "\n")
		}
	}

	stats := q.Stats()
	fmt.Fprintf(&b, "\n%s\n", s.Muted.Render(fmt.Sprintf("%d questions, %d choices, %d tags", stats.Questions, stats.Choices, stats.Tags)))

	_, err := io.WriteString(w, b.String())
	return err
}

// choiceLabel returns a, b, c ... for the first 26 choices and ? after that
func choiceLabel(i int) rune {
	if i < 26 {
		return rune('a' + i)
	}
	return '?'
}

// Source formats q as quiz source with one statement per line
func Source(q *ast.Quiz) string {
	var b strings.Builder
	b.WriteString("quiz {\n")
	if q.Title != nil {
		fmt.Fprintf(&b, "  title: %s;\n", ast.Quote(*q.Title))
	}
	if q.Description != nil {
		fmt.Fprintf(&b, "  description: %s;\n", ast.Quote(*q.Description))
	}
	for i, question := range q.Questions {
		if i > 0 || q.Title != nil || q.Description != nil {
			b.WriteString("\n")
		}
		b.WriteString("  question {\n")
		fmt.Fprintf(&b, "    text: %s;\n", ast.Quote(question.Text))
		for _, choice := range question.Choices {
			fmt.Fprintf(&b, "    choice: %s;\n", ast.Quote(choice))
		}
		fmt.Fprintf(&b, "    answer: %d;\n", question.Answer)
		if question.Difficulty != nil {
			fmt.Fprintf(&b, "    difficulty: %s;\n", ast.Quote(*question.Difficulty))
		}
		for _, tag := range question.Tags {
			fmt.Fprintf(&b, "    tag: %s;\n", ast.Quote(tag))
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	return b.String()
}
