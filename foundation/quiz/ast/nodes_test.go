// File: nodes_test.go
// Title: Quiz AST Tests
// Description: Tests for literal decoding, cloning, statistics and traversal.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial test implementation

package ast

import (
	"errors"
	"reflect"
	"testing"
)

func sampleQuiz() *Quiz {
	return &Quiz{
		Title: StringPtr("Geography"),
		Questions: []Question{
			{
				Text:       "Capital of France?",
				Choices:    []string{"Paris", "Lyon"},
				Answer:     0,
				Difficulty: StringPtr("easy"),
				Tags:       []string{"europe", "capitals"},
			},
			{
				Text:    "Longest river?",
				Choices: []string{},
				Answer:  3,
				Tags:    []string{"rivers", "europe"},
			},
		},
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		lexeme string
		want   string
	}{
		{`""`, ""},
		{`"plain"`, "plain"},
		{`"say \"hi\""`, `say "hi"`},
		{`"back\\slash"`, `back\slash`},
		{`"a\nb\tc\rd"`, "a\nb\tc\rd"},
		{`"\q"`, "q"},
		{`unquoted\n`, "unquoted\n"},
		{`"dangling\"`, `dangling\`},
	}
	for _, tt := range tests {
		if got := Unquote(tt.lexeme); got != tt.want {
			t.Errorf("Unquote(%q) = %q, want %q", tt.lexeme, got, tt.want)
		}
	}
}

func TestQuoteRoundTrip(t *testing.T) {
	for _, s := range []string{"", "plain", `say "hi"`, `C:\dir`, "two\nlines\tand\rcr", "ünïcödé"} {
		q := Quote(s)
		if q[0] != '"' || q[len(q)-1] != '"' {
			t.Errorf("Quote(%q) = %q is not quoted", s, q)
		}
		if got := Unquote(q); got != s {
			t.Errorf("Unquote(Quote(%q)) = %q", s, got)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleQuiz()
	clone := original.Clone()

	if !reflect.DeepEqual(original, clone) {
		t.Fatal("Clone() differs from original")
	}

	*clone.Title = "changed"
	clone.Questions[0].Choices[0] = "Marseille"
	*clone.Questions[0].Difficulty = "hard"
	clone.Questions[1].Tags = append(clone.Questions[1].Tags, "new")

	if *original.Title != "Geography" ||
		original.Questions[0].Choices[0] != "Paris" ||
		*original.Questions[0].Difficulty != "easy" ||
		len(original.Questions[1].Tags) != 2 {
		t.Error("mutating the clone changed the original")
	}

	var nilQuiz *Quiz
	if nilQuiz.Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestNormalize(t *testing.T) {
	q := &Quiz{Questions: []Question{{Text: "Q"}}}
	q.Normalize()

	want := &Quiz{Questions: []Question{NewQuestion("Q", 0)}}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("Normalize() = %#v, want %#v", q, want)
	}

	empty := &Quiz{}
	empty.Normalize()
	if !reflect.DeepEqual(empty, New()) {
		t.Error("Normalize() of an empty quiz should match New()")
	}
}

func TestTagsAndStats(t *testing.T) {
	q := sampleQuiz()

	if got := q.Tags(); !reflect.DeepEqual(got, []string{"europe", "capitals", "rivers"}) {
		t.Errorf("Tags() = %v", got)
	}

	s := q.Stats()
	if s.Questions != 2 || s.Choices != 2 || s.Tags != 3 {
		t.Errorf("Stats() = %+v", s)
	}
	if s.Difficulties["easy"] != 1 || len(s.Difficulties) != 1 {
		t.Errorf("Difficulties = %v", s.Difficulties)
	}
	if s.Unanswerable != 1 {
		t.Errorf("Unanswerable = %d, want 1", s.Unanswerable)
	}
	if got := s.SortedDifficulties(); !reflect.DeepEqual(got, []string{"easy"}) {
		t.Errorf("SortedDifficulties() = %v", got)
	}
}

func TestStrings(t *testing.T) {
	q := sampleQuiz()
	if got := q.String(); got != "Quiz(Geography, 2 questions)" {
		t.Errorf("Quiz.String() = %q", got)
	}
	if got := q.Questions[0].String(); got != "Question(Capital of France?, 2 choices, answer=0, difficulty=easy, tags=europe,capitals)" {
		t.Errorf("Question.String() = %q", got)
	}
	if got := New().String(); got != "Quiz(<untitled>, 0 questions)" {
		t.Errorf("untitled String() = %q", got)
	}
	if got := (&Quiz{Title: StringPtr("  ")}).TitleOr("demo.quiz"); got != "demo.quiz" {
		t.Errorf("TitleOr() = %q", got)
	}
}

type countingVisitor struct {
	BaseVisitor
	texts []string
}

func (v *countingVisitor) VisitQuestion(_ int, q *Question) error {
	v.texts = append(v.texts, q.Text)
	return nil
}

func TestWalk(t *testing.T) {
	v := &countingVisitor{}
	if err := Walk(v, sampleQuiz()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(v.texts, []string{"Capital of France?", "Longest river?"}) {
		t.Errorf("visited %v", v.texts)
	}

	stop := errors.New("stop")
	calls := 0
	err := Walk(VisitorFunc(func(int, *Question) error {
		calls++
		return stop
	}), sampleQuiz())
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("Walk() = %v after %d calls, want stop after 1", err, calls)
	}

	if err := Walk(v, nil); err != nil {
		t.Errorf("Walk(nil) = %v", err)
	}
}
