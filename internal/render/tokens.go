package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz/parser"
	"github.com/quizdsl/quizc/internal/tui"
)

// tokenRecord is the serialized form of a token
type tokenRecord struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Lexeme string `json:"lexeme" yaml:"lexeme" toml:"lexeme"`
	Line   int    `json:"line" yaml:"line" toml:"line"`
	Column int    `json:"column" yaml:"column" toml:"column"`
}

func tokenRecords(tokens []parser.Token) []tokenRecord {
	records := make([]tokenRecord, len(tokens))
	for i, tok := range tokens {
		records[i] = tokenRecord{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Line,
			Column: tok.Column,
		}
	}
	return records
}

// Tokens writes a token stream to w in the given format
func Tokens(w io.Writer, tokens []parser.Token, format Format) error {
	records := tokenRecords(tokens)

	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(records)
	case FormatYAML:
		err = yaml.NewEncoder(w).Encode(records)
	case FormatTOML:
		// TOML documents must be tables
		err = toml.NewEncoder(w).Encode(struct {
			Tokens []tokenRecord `toml:"tokens"`
		}{records})
	case FormatText, "":
		err = tokensText(w, records)
	default:
		return qzerror.Newf("format %q is not supported for tokens", format).
			WithCode(qzerror.CodeInvalidInput).
			WithOperation("render.Tokens")
	}

	if err != nil {
		return qzerror.Wrap(err, "failed to render tokens").WithDetail("format", string(format))
	}
	return nil
}

func tokensText(w io.Writer, records []tokenRecord) error {
	s := tui.NewStyles(lipgloss.NewRenderer(w))

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("POS", "KIND", "LEXEME").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Title
			}
			if col == 0 {
				return s.Gutter
			}
			return lipgloss.NewStyle()
		})

	for _, r := range records {
		t.Row(fmt.Sprintf("%d:%d", r.Line, r.Column), r.Kind, lexemeCell(r))
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// lexemeCell keeps control characters of a lexeme visible
func lexemeCell(r tokenRecord) string {
	if r.Kind == parser.TokenEOF.String() {
		return ""
	}
	return controlEscaper.Replace(r.Lexeme)
}

var controlEscaper = strings.NewReplacer("\t", `\t`, "\r", `\r`)
