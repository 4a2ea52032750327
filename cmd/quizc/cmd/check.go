package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	qzlog "github.com/quizdsl/quizc/foundation/core/log"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/internal/tui"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Check that quiz sources compile",
	Long: `Compiles every given quiz source and reports each problem.
All files are checked even when an earlier one fails.

Questions whose answer does not index one of their choices are
reported as warnings; with --strict they count as failures.

Exit status is 0 when every file compiles, 2 on lexical or syntax
errors and 1 on any other failure.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat answers without a matching choice as errors")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s := tui.NewStyles(nil)
	out := cmd.OutOrStdout()

	var first error
	failed := 0
	for _, path := range args {
		q, err := compileSource(cmd, appEngine, path)
		if err != nil {
			if _, ok := err.(*reportedError); !ok {
				printError(cmd.ErrOrStderr(), err)
			}
			if first == nil {
				first = err
			}
			failed++
			continue
		}

		warnings := 0
		ast.Walk(ast.VisitorFunc(func(i int, question *ast.Question) error {
			if !question.AnswerInRange() {
				warnings++
				fmt.Fprintf(out, "%s %s: question %d: answer %d has no matching choice\n",
					s.Accent.Render("warning:"), displayName(path), i+1, question.Answer)
			}
			return nil
		}), q)
		if checkStrict && warnings > 0 {
			if first == nil {
				first = qzerror.Newf("%s: %d question(s) without a valid answer", displayName(path), warnings).
					WithCode(qzerror.CodeInvalidInput)
			}
			failed++
			continue
		}

		fmt.Fprintf(out, "%s %s (%d questions)\n", s.Correct.Render("ok"), displayName(path), len(q.Questions))
	}

	if first == nil {
		return nil
	}
	appLogger.Debug("check finished", qzlog.Fields{"files": len(args), "failed": failed})
	// every failure has been printed already
	return &reportedError{err: first}
}
