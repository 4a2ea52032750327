package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quizdsl/quizc/foundation/core/config"
	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	qzlog "github.com/quizdsl/quizc/foundation/core/log"
	"github.com/quizdsl/quizc/foundation/quiz"
	"github.com/quizdsl/quizc/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool
)

// application state prepared by the root command before any subcommand runs
var (
	appConfig *config.Config
	appLogger *qzlog.Logger
	appEngine *quiz.Engine
	logCloser io.Closer
)

// configDefaults are applied beneath any config file
var configDefaults = map[string]interface{}{
	"log.level":              "warn",
	"log.format":             "console",
	"parser.max_input_bytes": quiz.DefaultMaxInputLength,
	"parser.decode_strings":  true,
	"catalog.path":           "./data/quizzes.db",
	"loader.dir":             "./quizzes",
	"loader.debounce":        "300ms",
	"output.format":          "text",
}

var configRules = config.ValidationRules{
	"log.level":              {Type: "string", OneOf: []string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}},
	"log.format":             {Type: "string", OneOf: []string{"json", "text", "plain", "console", "color", "colour", "logfmt"}},
	"parser.max_input_bytes": {Type: "int", Min: 1},
	"parser.decode_strings":  {Type: "bool"},
	"catalog.path":           {Type: "string", Required: true},
	"loader.debounce":        {Type: "duration"},
	"output.format":          {Type: "string", OneOf: []string{"text", "txt", "json", "yaml", "yml", "toml", "quiz", "source"}},
}

var rootCmd = &cobra.Command{
	Use:   "quizc",
	Short: "quizc - compiler for the quiz DSL",
	Long: `quizc turns quiz sources into structured quizzes.

A quiz source holds one quiz block with an optional title and
description followed by question blocks:

  quiz {
    title: "Capitals";
    question {
      text: "Capital of France?";
      choice: "Paris";
      choice: "Lyon";
      answer: 0;
      tag: "europe";
    }
  }

Configuration is read from quizc.toml or quizc.yaml in the current
directory or ./config, and from QUIZC_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		teardown()
	},
}

// Execute runs the CLI and returns the process exit status
func Execute() int {
	err := rootCmd.Execute()
	teardown()
	if err == nil {
		return 0
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return exitStatus(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./quizc.toml or ./config/quizc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// setup loads configuration and builds the logger and engine
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lc := logging.FromConfig(cfg, "quizc")
	lc.Output = cmd.ErrOrStderr()
	if verbose {
		lc.Level = "debug"
	}
	logger, closer := logging.NewLogger(lc)
	qzlog.SetDefault(logger)

	appConfig = cfg
	appLogger = logger
	logCloser = closer
	appEngine = newEngine(cfg.GetBool("parser.decode_strings", true))

	logger.Debug("configuration loaded", qzlog.Fields{"file": cfg.FilePath(), "command": cmd.CommandPath()})
	return nil
}

func teardown() {
	if logCloser != nil {
		if err := logCloser.Close(); err != nil && appLogger != nil {
			appLogger.WarnWithErr("failed to flush log file", err)
		}
		logCloser = nil
	}
}

func loadConfig() (*config.Config, error) {
	options := config.LoadOptions{EnvPrefix: "QUIZC", Defaults: configDefaults}

	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadWithOptions(cfgFile, options)
	} else {
		cfg, err = config.Discover([]string{".", "./config"}, []string{"quizc"}, options)
	}
	if err != nil {
		return nil, qzerror.Wrap(err, "failed to load configuration").WithCode(qzerror.CodeConfigError)
	}

	if err := cfg.Validate(configRules); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newEngine(decode bool) *quiz.Engine {
	return quiz.NewEngine(quiz.Options{
		Logger:         appLogger,
		MaxInputLength: appConfig.GetInt("parser.max_input_bytes", quiz.DefaultMaxInputLength),
		DecodeStrings:  decode,
	})
}

// reportedError marks an error whose diagnostic was already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func exitStatus(err error) int {
	return qzerror.GetCode(err).ExitStatus()
}

func printError(w io.Writer, err error) {
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(w, "error: %s", msg)
}

// outputFormat returns the --format flag value, falling back to output.format
func outputFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.GetString("output.format", "text")
}
