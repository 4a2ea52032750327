package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizdsl/quizc/internal/render"
)

var tokensFormat string

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a quiz source",
	Long: `Scans a quiz source and prints every token with its line and column.

Examples:
  quizc tokens capitals.quiz
  quizc tokens --format json capitals.quiz
  cat capitals.quiz | quizc tokens -`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&tokensFormat, "format", "f", "", "output format: text, json, yaml, toml")
}

func runTokens(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outputFormat(tokensFormat))
	if err != nil {
		return err
	}

	source, err := readSource(cmd, args[0], appEngine.Options().MaxInputLength)
	if err != nil {
		return err
	}

	tokens, err := appEngine.Tokenize(source)
	if err != nil {
		return report(cmd, args[0], source, err)
	}
	return render.Tokens(cmd.OutOrStdout(), tokens, format)
}
