package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
	"github.com/quizdsl/quizc/foundation/quiz"
	"github.com/quizdsl/quizc/foundation/quiz/ast"
	"github.com/quizdsl/quizc/internal/render"
)

// stdinName is the path argument that reads the source from standard input
const stdinName = "-"

// readSource reads a quiz source file, or standard input for "-". At most
// limit bytes are read; longer input fails with INPUT_TOO_LARGE.
func readSource(cmd *cobra.Command, path string, limit int) (string, error) {
	var data []byte
	var err error
	if path == stdinName {
		data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), int64(limit)+1))
	} else {
		var info os.FileInfo
		if info, err = os.Stat(path); err == nil {
			if info.Size() > int64(limit) {
				return "", tooLarge(path, limit)
			}
			data, err = os.ReadFile(path)
		}
	}
	if err != nil {
		code := qzerror.CodeInvalidInput
		if os.IsNotExist(err) {
			code = qzerror.CodeNotFound
		}
		return "", qzerror.Wrap(err, "failed to read quiz source").
			WithCode(code).
			WithDetail("path", path)
	}
	if len(data) > limit {
		return "", tooLarge(path, limit)
	}
	return string(data), nil
}

func tooLarge(path string, limit int) error {
	return qzerror.Newf("input exceeds maximum length of %d bytes", limit).
		WithCode(qzerror.CodeInputTooLarge).
		WithDetail("path", path).
		WithDetail("max_length", limit)
}

func displayName(path string) string {
	if path == stdinName {
		return "<stdin>"
	}
	return path
}

// compileSource compiles path with engine. Lexical and syntax errors are
// printed as diagnostics and returned as reportedError.
func compileSource(cmd *cobra.Command, engine *quiz.Engine, path string) (*ast.Quiz, error) {
	source, err := readSource(cmd, path, engine.Options().MaxInputLength)
	if err != nil {
		return nil, err
	}

	q, err := engine.Compile(source)
	if err != nil {
		return nil, report(cmd, path, source, err)
	}
	return q, nil
}

// report prints err as a source diagnostic and marks it reported
func report(cmd *cobra.Command, path, source string, err error) error {
	if _, _, ok := quiz.Position(err); !ok {
		return err
	}
	render.Diagnostic(cmd.ErrOrStderr(), displayName(path), source, err)
	return &reportedError{err: err}
}
