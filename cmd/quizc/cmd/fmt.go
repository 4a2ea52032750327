package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	qzlog "github.com/quizdsl/quizc/foundation/core/log"
	"github.com/quizdsl/quizc/internal/render"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>...",
	Short: "Rewrite quiz sources in canonical layout",
	Long: `Prints each quiz source in canonical layout: one statement per
line, two-space indentation, comments removed.

With --write the files are rewritten in place.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the source file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	engine := newEngine(true)

	for _, path := range args {
		q, err := compileSource(cmd, engine, path)
		if err != nil {
			return err
		}
		formatted := render.Source(q)

		if !fmtWrite || path == stdinName {
			fmt.Fprint(cmd.OutOrStdout(), formatted)
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return qzerror.Wrap(err, "failed to stat quiz source").WithDetail("path", path)
		}
		if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
			return qzerror.Wrap(err, "failed to write quiz source").WithDetail("path", path)
		}
		appLogger.Debug("quiz source formatted", qzlog.Fields{"path": path})
	}
	return nil
}
