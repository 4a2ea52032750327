package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizdsl/quizc/internal/render"
)

var (
	parseFormat string
	parseRaw    bool
)

var parseCmd = &cobra.Command{
	Use:     "parse <file>",
	Aliases: []string{"compile"},
	Short:   "Compile a quiz source and print the quiz",
	Long: `Compiles a quiz source and prints the resulting quiz.

String values are decoded (quotes removed, escapes resolved) unless
--raw is given or parser.decode_strings is false.

Examples:
  quizc parse capitals.quiz
  quizc parse --format yaml capitals.quiz
  quizc parse --raw --format json capitals.quiz`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: text, json, yaml, toml, quiz")
	parseCmd.Flags().BoolVar(&parseRaw, "raw", false, "keep string values exactly as written, quotes included")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outputFormat(parseFormat))
	if err != nil {
		return err
	}

	engine := appEngine
	switch {
	case format == render.FormatQuiz:
		// re-emitted source is always built from decoded values
		engine = newEngine(true)
	case parseRaw:
		engine = newEngine(false)
	}

	q, err := compileSource(cmd, engine, args[0])
	if err != nil {
		return err
	}
	return render.Quiz(cmd.OutOrStdout(), q, format)
}
