package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quizdsl/quizc/internal/loader"
	"github.com/quizdsl/quizc/internal/render"
	"github.com/quizdsl/quizc/internal/tui"
	"github.com/quizdsl/quizc/pkg/core/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Compile a directory of quizzes and recompile on change",
	Long: `Compiles every *.quiz file in a directory (default: loader.dir,
./quizzes) and keeps watching it. Changed files are recompiled after
loader.debounce (default 300ms) without further changes; diagnostics
are printed as they occur.

Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := appConfig.GetString("loader.dir", "./quizzes")
	if len(args) == 1 {
		dir = args[0]
	}

	s := tui.NewStyles(nil)
	out := cmd.OutOrStdout()

	l := loader.NewLoader(dir, appEngine, logging.Wrap(appLogger, "loader"))
	l.SetDebounce(appConfig.GetDuration("loader.debounce", loader.DefaultDebounce))

	if err := l.LoadAll(); err != nil {
		return err
	}
	for _, entry := range l.All() {
		fmt.Fprintf(out, "%s %s (%d questions)\n", s.Correct.Render("ok"), entry.Path, len(entry.Quiz.Questions))
	}
	failures := l.Errors()
	paths := make([]string, 0, len(failures))
	for path := range failures {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		printDiagnostic(cmd, path, failures[path])
	}

	l.SetOnChange(func(entry *loader.Entry) {
		fmt.Fprintf(out, "%s %s (%d questions)\n", s.Correct.Render("compiled"), entry.Path, len(entry.Quiz.Questions))
	})
	l.SetOnError(func(path string, err error) {
		printDiagnostic(cmd, path, err)
	})
	l.SetOnDelete(func(path string) {
		fmt.Fprintf(out, "%s %s\n", s.Muted.Render("removed"), path)
	})

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := l.StartWatching(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %s (Ctrl+C to stop)\n", dir)

	<-ctx.Done()
	l.Stop()
	if ctx.Err() == context.Canceled {
		return nil
	}
	return ctx.Err()
}

// printDiagnostic re-reads path so the diagnostic can quote the source
func printDiagnostic(cmd *cobra.Command, path string, err error) {
	data, _ := os.ReadFile(path)
	render.Diagnostic(cmd.ErrOrStderr(), path, string(data), err)
}
