package player

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quizdsl/quizc/foundation/quiz/ast"
)

// Run plays q on the terminal and returns the result once the player quits
func Run(q *ast.Quiz, in io.Reader, out io.Writer) (Result, error) {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(New(q), opts...).Run()
	if err != nil {
		return Result{}, err
	}
	return final.(Model).Result(), nil
}
