// File: nodes.go
// Title: Quiz AST Node Definitions
// Description: Defines the Quiz and Question nodes produced by the parser
//              together with copy, summary and statistics helpers.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quizdsl/quizc/foundation/utils/stringx"
)

// Quiz is the root of a parsed quiz document. Title and Description are nil
// when the header omits them. Questions is non-nil after a successful parse.
type Quiz struct {
	Title       *string    `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Questions   []Question `json:"questions" yaml:"questions" toml:"questions"`
}

// Question is one question block. Text and Answer are required by the
// grammar; Choices and Tags keep source order and may be empty.
type Question struct {
	Text       string   `json:"text" yaml:"text" toml:"text"`
	Choices    []string `json:"choices" yaml:"choices" toml:"choices"`
	Answer     int      `json:"answer" yaml:"answer" toml:"answer"`
	Difficulty *string  `json:"difficulty,omitempty" yaml:"difficulty,omitempty" toml:"difficulty,omitempty"`
	Tags       []string `json:"tags" yaml:"tags" toml:"tags"`
}

// StringPtr returns a pointer to a copy of s
func StringPtr(s string) *string {
	return &s
}

// New returns an empty quiz whose slices are non-nil
func New() *Quiz {
	return &Quiz{Questions: []Question{}}
}

// NewQuestion returns a question with non-nil Choices and Tags
func NewQuestion(text string, answer int) Question {
	return Question{Text: text, Answer: answer, Choices: []string{}, Tags: []string{}}
}

// Clone returns a deep copy of the quiz
func (q *Quiz) Clone() *Quiz {
	if q == nil {
		return nil
	}
	out := &Quiz{
		Title:       clonePtr(q.Title),
		Description: clonePtr(q.Description),
		Questions:   make([]Question, len(q.Questions)),
	}
	for i := range q.Questions {
		out.Questions[i] = q.Questions[i].Clone()
	}
	return out
}

// Clone returns a deep copy of the question
func (q Question) Clone() Question {
	return Question{
		Text:       q.Text,
		Choices:    append([]string{}, q.Choices...),
		Answer:     q.Answer,
		Difficulty: clonePtr(q.Difficulty),
		Tags:       append([]string{}, q.Tags...),
	}
}

// Normalize replaces nil slices with empty ones so that trees built by hand
// or decoded from storage compare equal to parsed trees.
func (q *Quiz) Normalize() {
	if q.Questions == nil {
		q.Questions = []Question{}
	}
	for i := range q.Questions {
		if q.Questions[i].Choices == nil {
			q.Questions[i].Choices = []string{}
		}
		if q.Questions[i].Tags == nil {
			q.Questions[i].Tags = []string{}
		}
	}
}

// TitleOr returns the title, or fallback when it is unset or blank
func (q *Quiz) TitleOr(fallback string) string {
	if q.Title == nil {
		return fallback
	}
	return stringx.FirstNonBlank(*q.Title, fallback)
}

// Tags returns the distinct tags of all questions in first-seen order
func (q *Quiz) Tags() []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, question := range q.Questions {
		for _, tag := range question.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// Stats summarises a quiz
type Stats struct {
	Questions int
	Choices   int
	Tags      int
	// Difficulties counts questions per difficulty value; unset is not counted
	Difficulties map[string]int
	// Unanswerable counts questions whose answer is not a valid 0-based choice index
	Unanswerable int
}

// Stats computes question, choice and difficulty counts
func (q *Quiz) Stats() Stats {
	s := Stats{Difficulties: make(map[string]int)}
	for _, question := range q.Questions {
		s.Questions++
		s.Choices += len(question.Choices)
		if question.Difficulty != nil {
			s.Difficulties[*question.Difficulty]++
		}
		if !question.AnswerInRange() {
			s.Unanswerable++
		}
	}
	s.Tags = len(q.Tags())
	return s
}

// AnswerInRange reports whether Answer indexes one of the choices (0-based).
// The parser never checks this.
func (q Question) AnswerInRange() bool {
	return q.Answer >= 0 && q.Answer < len(q.Choices)
}

// String returns a one-line summary of the quiz
func (q *Quiz) String() string {
	title := "<untitled>"
	if q.Title != nil {
		title = *q.Title
	}
	return fmt.Sprintf("Quiz(%s, %d questions)", title, len(q.Questions))
}

// String returns a one-line summary of the question
func (q Question) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question(%s, %d choices, answer=%d", q.Text, len(q.Choices), q.Answer)
	if q.Difficulty != nil {
		fmt.Fprintf(&b, ", difficulty=%s", *q.Difficulty)
	}
	if len(q.Tags) > 0 {
		fmt.Fprintf(&b, ", tags=%s", strings.Join(q.Tags, ","))
	}
	b.WriteString(")")
	return b.String()
}

// SortedDifficulties returns the difficulty names of s in lexical order
func (s Stats) SortedDifficulties() []string {
	names := make([]string, 0, len(s.Difficulties))
	for name := range s.Difficulties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	return StringPtr(*s)
}
