package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/foundation/quiz/parser"
)

const capitals = `quiz {
  title: "Capitals";
  description: "Europe \"west\"";
  question {
    text: "Capital of France?";
    choice: "Paris";
    choice: "Lyon";
    answer: 0;
    difficulty: "easy";
    tag: "europe";
  }
  question { text: "Capital of Spain?"; answer: 3; }
}`

func decoded(t *testing.T, src string) *ast.Quiz {
	t.Helper()
	q, err := parser.Parse(src, parser.Options{DecodeStrings: true})
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"json", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"source", FormatQuiz, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if err != nil && !qzerror.HasCode(err, qzerror.CodeInvalidInput) {
				t.Errorf("error code = %v, want INVALID_INPUT", qzerror.GetCode(err))
			}
		})
	}
}

func TestQuizStructuredFormats(t *testing.T) {
	want := decoded(t, capitals)

	decoders := map[Format]func([]byte, *ast.Quiz) error{
		FormatJSON: func(b []byte, q *ast.Quiz) error { return json.Unmarshal(b, q) },
		FormatYAML: func(b []byte, q *ast.Quiz) error { return yaml.Unmarshal(b, q) },
		FormatTOML: func(b []byte, q *ast.Quiz) error { return toml.Unmarshal(b, q) },
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Quiz(&buf, want, format); err != nil {
				t.Fatalf("Quiz() error = %v", err)
			}
			got := ast.New()
			if err := decode(buf.Bytes(), got); err != nil {
				t.Fatalf("decode error = %v\n%s", err, buf.String())
			}
			got.Normalize()
			if !reflect.DeepEqual(got, want) {
				t.Errorf("decoded %#v\nwant %#v", got, want)
			}
		})
	}
}

func TestQuizText(t *testing.T) {
	var buf bytes.Buffer
	if err := Quiz(&buf, decoded(t, capitals), FormatText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"Capitals",
		`Europe "west"`,
		"1. Capital of France? [easy] #europe",
		"   a) Paris  *",
		"   b) Lyon",
		"2. Capital of Spain?",
		"answer 3 has no matching choice",
		"2 questions, 2 choices, 1 tags",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestSourceRoundTrip(t *testing.T) {
	original := decoded(t, capitals)

	var buf bytes.Buffer
	if err := Quiz(&buf, original, FormatQuiz); err != nil {
		t.Fatal(err)
	}
	reparsed := decoded(t, buf.String())
	if !reflect.DeepEqual(reparsed, original) {
		t.Errorf("reparsed %#v\nwant %#v\nsource:\n%s", reparsed, original, buf.String())
	}

	if got := Source(decoded(t, `quiz {}`)); got != "quiz {\n}\n" {
		t.Errorf("Source(empty) = %q", got)
	}
}

func TestQuizNil(t *testing.T) {
	if err := Quiz(&bytes.Buffer{}, nil, FormatJSON); err == nil {
		t.Error("Quiz(nil) should fail")
	}
}

func TestTokens(t *testing.T) {
	tokens, err := parser.Tokenize(`quiz { title: "T"; }`)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Tokens(&buf, tokens, FormatJSON); err != nil {
			t.Fatal(err)
		}
		var records []tokenRecord
		if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
			t.Fatal(err)
		}
		if len(records) != len(tokens) {
			t.Fatalf("got %d records, want %d", len(records), len(tokens))
		}
		if records[4] != (tokenRecord{Kind: "STRING", Lexeme: `"T"`, Line: 1, Column: 15}) {
			t.Errorf("records[4] = %+v", records[4])
		}
		if records[len(records)-1].Kind != "EOF" {
			t.Errorf("last record = %+v, want EOF", records[len(records)-1])
		}
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Tokens(&buf, tokens, FormatTOML); err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(buf.String(), "[[tokens]]") {
			t.Errorf("toml output = %s", buf.String())
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Tokens(&buf, tokens, FormatText); err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"POS", "KIND", "1:1", "QUIZ", "1:15", `"T"`, "EOF"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("text output missing %q:\n%s", want, buf.String())
			}
		}
	})

	t.Run("quiz format rejected", func(t *testing.T) {
		if err := Tokens(&bytes.Buffer{}, tokens, FormatQuiz); !qzerror.HasCode(err, qzerror.CodeInvalidInput) {
			t.Errorf("Tokens(quiz) error = %v", err)
		}
	})
}

func TestDiagnostic(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "parse error",
			source: "quiz {\n  title \"Capitals\";\n}",
			want: []string{
				"caps.quiz:2:9: parse error: expected ':' after 'title', got string literal\n",
				"  2 |   title \"Capitals\";\n",
				"    |         ^\n",
			},
		},
		{
			name:   "lex error with tab indent",
			source: "quiz {\n\t@\n}",
			want: []string{
				"caps.quiz:2:2: lex error: unexpected character '@'\n",
				"    | \t^\n",
			},
		},
		{
			name:   "error at end of input",
			source: "quiz {",
			want: []string{
				"caps.quiz:1:7: parse error:",
				"  1 | quiz {\n",
				"    |       ^\n",
			},
		},
	}

	engine := quiz.NewEngine(quiz.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compile(tt.source)
			if err == nil {
				t.Fatal("expected a compile error")
			}

			var buf bytes.Buffer
			if err := Diagnostic(&buf, "caps.quiz", tt.source, err); err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("diagnostic missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestDiagnosticPlainError(t *testing.T) {
	var buf bytes.Buffer
	Diagnostic(&buf, "", "", errors.New("disk on fire"))
	if buf.String() != "error: disk on fire\n" {
		t.Errorf("Diagnostic() = %q", buf.String())
	}

	buf.Reset()
	if err := Diagnostic(&buf, "", "", nil); err != nil || buf.Len() != 0 {
		t.Error("Diagnostic(nil) should write nothing")
	}
}

func TestCaretIndent(t *testing.T) {
	tests := []struct {
		text   string
		column int
		want   string
	}{
		{"abc", 1, ""},
		{"abc", 3, "  "},
		{"\tx", 2, "\t"},
		{"é@", 2, " "},
		{"ab", 4, "   "},
	}
	for _, tt := range tests {
		if got := caretIndent(tt.text, tt.column); got != tt.want {
			t.Errorf("caretIndent(%q, %d) = %q, want %q", tt.text, tt.column, got, tt.want)
		}
	}
}
