package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/internal/tui/player"
)

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Play a quiz in the terminal",
	Long: `Starts an interactive quiz session in the terminal.

Questions without choices are skipped. The answer of a question is the
0-based index of the correct choice.

Keys:
  up/k, down/j   Move between choices
  enter          Answer
  q, esc         Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if args[0] == stdinName {
		return qzerror.New("play needs a file: standard input is used for the keyboard").
			WithCode(qzerror.CodeInvalidInput)
	}

	q, err := compileSource(cmd, newEngine(true), args[0])
	if err != nil {
		return err
	}

	result, err := player.Run(q, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if result.Finished {
		fmt.Fprintf(cmd.OutOrStdout(), "Score: %d / %d\n", result.Score(), result.Total())
	}
	return nil
}
