package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/quizdsl/quizc/foundation/utils/stringx"
	"github.com/quizdsl/quizc/internal/catalog"
	"github.com/quizdsl/quizc/internal/render"
	"github.com/quizdsl/quizc/internal/tui"
)

var (
	catalogDB         string
	catalogShowFormat string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the quiz catalog",
	Long: `Stores compiled quizzes in a SQLite catalog.

The database location comes from --db or catalog.path
(default ./data/quizzes.db).

Examples:
  quizc catalog import quizzes/*.quiz
  quizc catalog list
  quizc catalog show 3f0c...
  quizc catalog tag europe
  quizc catalog delete 3f0c...`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Compile quiz sources and store them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogImport,
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored quizzes",
	Args:    cobra.NoArgs,
	RunE:    runCatalogList,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored quiz",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

var catalogDeleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Remove stored quizzes",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCatalogDelete,
}

var catalogTagCmd = &cobra.Command{
	Use:   "tag <tag>",
	Short: "List stored quizzes with a question carrying tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogTag,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogImportCmd, catalogListCmd, catalogShowCmd, catalogDeleteCmd, catalogTagCmd)

	catalogCmd.PersistentFlags().StringVar(&catalogDB, "db", "", "catalog database path (overrides catalog.path)")
	catalogShowCmd.Flags().StringVarP(&catalogShowFormat, "format", "f", "", "output format: text, json, yaml, toml, quiz")
}

func openCatalog() (*catalog.SQLiteStore, error) {
	path := catalogDB
	if path == "" {
		path = appConfig.GetString("catalog.path", catalog.DefaultSQLiteConfig().Path)
	}
	return catalog.NewSQLiteStore(catalog.SQLiteConfig{Path: path})
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	// stored quizzes always hold decoded strings
	engine := newEngine(true)
	ctx := commandContext(cmd)
	for _, path := range args {
		q, err := compileSource(cmd, engine, path)
		if err != nil {
			return err
		}

		source := path
		if abs, err := filepath.Abs(path); err == nil && path != stdinName {
			source = abs
		}
		id, err := store.Save(ctx, q, source)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%d questions)\n", id, displayName(path), len(q.Questions))
	}
	return nil
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.List(commandContext(cmd))
	if err != nil {
		return err
	}
	printSummaries(cmd, summaries)
	return nil
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(outputFormat(catalogShowFormat))
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	return render.Quiz(cmd.OutOrStdout(), rec.Quiz, format)
}

func runCatalogDelete(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range args {
		if err := store.Delete(commandContext(cmd), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	}
	return nil
}

func runCatalogTag(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.FindByTag(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	printSummaries(cmd, summaries)
	return nil
}

func printSummaries(cmd *cobra.Command, summaries []catalog.Summary) {
	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintln(out, "no quizzes")
		return
	}

	s := tui.NewStyles(lipgloss.NewRenderer(out))
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Muted).
		Headers("ID", "TITLE", "QUESTIONS", "SOURCE", "CREATED")

	for _, sum := range summaries {
		t.Row(sum.ID, stringx.Truncate(sum.Title, 40, "…"), fmt.Sprint(sum.QuestionCount), sum.SourcePath, sum.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out, t.Render())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
