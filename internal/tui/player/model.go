// ============================================================================
// quizc - Quiz DSL compiler
// ============================================================================
//
// Package:     player
// Description: Interactive terminal player for compiled quizzes
// Author:      quizc contributors
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package player

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/internal/tui"
)

// Outcome records how one question was answered
type Outcome struct {
	Index    int // position of the question in the quiz
	Chosen   int
	Expected int
	Correct  bool
}

// Result is the score of a session
type Result struct {
	Outcomes []Outcome
	// Skipped lists the questions that had no choices to pick from
	Skipped []int
	// Finished is false when the player quit early
	Finished bool
}

// Score returns the number of correct answers
func (r Result) Score() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Correct {
			n++
		}
	}
	return n
}

// Total returns the number of questions that were answered
func (r Result) Total() int {
	return len(r.Outcomes)
}

// Model is the bubbletea model of a quiz session
type Model struct {
	quiz     *ast.Quiz
	playable []int // indexes of questions with choices
	current  int   // position in playable
	cursor   int
	result   Result
	done     bool
	quitting bool

	styles   tui.Styles
	viewport viewport.Model
	ready    bool
	width    int
	height   int
}

// New creates a player for q. Questions without choices are skipped.
func New(q *ast.Quiz) Model {
	m := Model{
		quiz:   q,
		styles: tui.NewStyles(nil),
	}
	for i, question := range q.Questions {
		if len(question.Choices) == 0 {
			m.result.Skipped = append(m.result.Skipped, i)
			continue
		}
		m.playable = append(m.playable, i)
	}
	if len(m.playable) == 0 {
		m.done = true
		m.result.Finished = true
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Result returns the outcome so far
func (m Model) Result() Result {
	return m.result
}

// Done reports whether every playable question has been answered
func (m Model) Done() bool {
	return m.done
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		if m.done {
			m.viewport.SetContent(m.summary())
		}
	}

	if m.done && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyUp:
		m.moveCursor(-1)
		return m, nil

	case tea.KeyDown, tea.KeyTab:
		m.moveCursor(1)
		return m, nil

	case tea.KeyEnter:
		if m.done {
			m.quitting = true
			return m, tea.Quit
		}
		m.answer()
		return m, nil

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "k":
			m.moveCursor(-1)
			return m, nil
		case "j":
			m.moveCursor(1)
			return m, nil
		}
	}

	if m.done && m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.done {
		return
	}
	n := len(m.question().Choices)
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) question() ast.Question {
	return m.quiz.Questions[m.playable[m.current]]
}

// answer records the choice under the cursor and advances
func (m *Model) answer() {
	index := m.playable[m.current]
	q := m.question()
	m.result.Outcomes = append(m.result.Outcomes, Outcome{
		Index:    index,
		Chosen:   m.cursor,
		Expected: q.Answer,
		Correct:  q.AnswerInRange() && m.cursor == q.Answer,
	})

	m.current++
	m.cursor = 0
	if m.current == len(m.playable) {
		m.done = true
		m.result.Finished = true
		if m.ready {
			m.viewport.SetContent(m.summary())
		}
	}
}

// View renders the model
func (m Model) View() string {
	if m.quitting && !m.done {
		return ""
	}
	if m.done {
		if m.ready {
			return m.viewport.View() + "\n" + m.styles.Help.Render("enter/q quit • ↑/↓ scroll")
		}
		return m.summary()
	}

	s := m.styles
	q := m.question()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.quiz.TitleOr("Quiz")))
	b.WriteString("  ")
	b.WriteString(s.Muted.Render(fmt.Sprintf("question %d of %d", m.current+1, len(m.playable))))
	b.WriteString("\n\n")
	b.WriteString(q.Text)
	if q.Difficulty != nil {
		b.WriteString(" " + s.Accent.Render("["+*q.Difficulty+"]"))
	}
	b.WriteString("\n\n")

	for i, choice := range q.Choices {
		if i == m.cursor {
			b.WriteString(s.Selected.Render("> " + choice))
		} else {
			b.WriteString(s.Item.Render(choice))
		}
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render("↑/k up • ↓/j down • enter answer • q quit"))
	return b.String()
}

// summary renders the final score and the per-question review
func (m Model) summary() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render(fmt.Sprintf("Score: %d / %d", m.result.Score(), m.result.Total())))
	b.WriteString("\n\n")

	for _, o := range m.result.Outcomes {
		q := m.quiz.Questions[o.Index]
		if o.Correct {
			b.WriteString(s.Correct.Render("✓ " + q.Text))
		} else {
			b.WriteString(s.Wrong.Render("✗ " + q.Text))
			if q.AnswerInRange() {
				b.WriteString(s.Muted.Render("  (answer: " + q.Choices[q.Answer] + ")"))
			} else {
				b.WriteString(s.Muted.Render("  (no valid answer)"))
			}
		}
		b.WriteString("\n")
	}

	if len(m.result.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(s.Muted.Render(fmt.Sprintf("%d question(s) without choices skipped", len(m.result.Skipped))))
		b.WriteString("\n")
	}
	return b.String()
}
