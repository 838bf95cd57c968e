// Package execx runs external commands (git) behind a replaceable Runner.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner は外部コマンドを実行するための最小インターフェースです。
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout []byte, stderr []byte, err error)
}

// CommandRunner は exec.CommandContext を利用したデフォルト実装です。
type CommandRunner struct {
	// Env is appended to the inherited environment.
	Env    []string
	Logger logrus.FieldLogger
}

// Run は dir でコマンドを実行し、標準出力・標準エラーを収集します。
func (r CommandRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	start := time.Now()
	err := cmd.Run()
	if r.Logger != nil {
		r.Logger.WithFields(logrus.Fields{
			"cmd":     name + " " + strings.Join(args, " "),
			"dir":     dir,
			"elapsed": time.Since(start).Round(time.Millisecond),
		}).Debug("exec")
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// DefaultRunner runs git with a stable, non-interactive environment.
func DefaultRunner(logger logrus.FieldLogger) Runner {
	return CommandRunner{
		Env:    []string{"GIT_OPTIONAL_LOCKS=0", "GIT_TERMINAL_PROMPT=0", "LC_ALL=C"},
		Logger: logger,
	}
}

// CommandError は失敗したコマンドと標準エラーの内容を保持します。
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	sub := e.Name
	if c := subcommand(e.Args); c != "" {
		sub += " " + c
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", sub, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", sub, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// subcommand skips leading options such as "-c key=value".
func subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-c" || a == "-C":
			i++
		case strings.HasPrefix(a, "-"):
		default:
			return a
		}
	}
	return ""
}

// Output runs the command and returns stdout. A failure is reported as a
// *CommandError carrying the trimmed stderr.
func Output(ctx context.Context, r Runner, dir, name string, args ...string) ([]byte, error) {
	out, stderr, err := r.Run(ctx, dir, name, args...)
	if err != nil {
		return out, &CommandError{Name: name, Args: args, Stderr: strings.TrimSpace(string(stderr)), Err: err}
	}
	return out, nil
}
