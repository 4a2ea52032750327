package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/internal/catalog"
	"github.com/quizdsl/quizc/internal/tui"
	"github.com/quizdsl/quizc/pkg/core/health"
	"github.com/quizdsl/quizc/pkg/core/version"
)

const doctorSample = `quiz {
  title: "doctor";
  question { text: "ok?"; choice: "yes"; answer: 0; }
}`

var doctorFormat string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the quizc environment",
	Long: `Runs a set of checks against the current configuration: the parser
compiles a built-in sample, the loader directory exists, and the
catalog database can be opened.

Exit status is 1 when any check is unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", "text", "output format (text, json, yaml)")
}

func doctorRegistry() *health.Registry {
	registry := health.NewRegistry("quizc", version.Compiler)

	registry.RegisterFunc("config", func(ctx context.Context) health.CheckResult {
		result := health.CheckResult{Status: health.StatusHealthy, Message: "defaults only"}
		if path := appConfig.FilePath(); path != "" {
			result.Message = path
		}
		return result
	})

	registry.Register(health.ErrorCheck("parser", func(ctx context.Context) error {
		_, err := appEngine.Compile(doctorSample)
		return err
	}))

	loaderDir := appConfig.GetString("loader.dir", "./quizzes")
	registry.Register(health.DirCheck("loader.dir", loaderDir, false))

	dbPath := catalogDB
	if dbPath == "" {
		dbPath = appConfig.GetString("catalog.path", catalog.DefaultSQLiteConfig().Path)
	}
	registry.Register(health.WritableDirCheck("catalog.dir", dbPath))
	registry.RegisterFunc("catalog.db", func(ctx context.Context) health.CheckResult {
		result := health.CheckResult{Details: map[string]interface{}{"path": dbPath}}
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			result.Status = health.StatusDegraded
			result.Message = "database not created yet"
			return result
		}

		store, err := catalog.NewSQLiteStore(catalog.SQLiteConfig{Path: dbPath})
		if err != nil {
			result.Status = health.StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		defer store.Close()

		n, err := store.Count(ctx)
		if err != nil {
			result.Status = health.StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		result.Status = health.StatusHealthy
		result.Message = fmt.Sprintf("%d quizzes", n)
		return result
	})

	return registry
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), 10*time.Second)
	defer cancel()

	report := doctorRegistry().Check(ctx)
	if err := writeReport(cmd.OutOrStdout(), report, doctorFormat); err != nil {
		return err
	}

	if !report.Healthy() {
		return &reportedError{err: qzerror.New(report.String()).WithCode(qzerror.CodeInternal)}
	}
	return nil
}

func writeReport(w io.Writer, report *health.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
	default:
		return qzerror.Newf("unknown doctor format %q", format).WithCode(qzerror.CodeInvalidInput)
	}

	s := tui.NewStyles(nil)
	for _, check := range report.Checks {
		mark := s.Correct.Render("ok  ")
		switch check.Status {
		case health.StatusDegraded, health.StatusUnknown:
			mark = s.Accent.Render("warn")
		case health.StatusUnhealthy:
			mark = s.Wrong.Render("fail")
		}
		fmt.Fprintf(w, "%s %-12s %s\n", mark, check.Name, check.Message)
	}
	fmt.Fprintln(w, s.Muted.Render(report.String()))
	return nil
}
