// Command todolint reports TODO and FIXME markers left in source comments.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/termcolor"
)

const (
	exitFindings = 1
	exitFailure  = 2
)

// exitError は RunE から終了コードを伝えるためのエラーです。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// globalState はコマンド全体で共有する入出力と環境です。
type globalState struct {
	stdout io.Writer
	stderr io.Writer
	env    map[string]string
	logger *logrus.Logger
	flags  globalFlags
}

type globalFlags struct {
	config    string
	color     string
	verbose   bool
	quiet     bool
	logFormat string
}

func (gs *globalState) getenv(key string) string { return gs.env[key] }

func main() {
	gs := &globalState{
		stdout: os.Stdout,
		stderr: os.Stderr,
		env:    termcolor.EnvMap(os.Environ()),
	}
	os.Exit(execute(context.Background(), gs, os.Args[1:]))
}

func execute(ctx context.Context, gs *globalState, args []string) int {
	root := newRootCommand(gs)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(gs.stderr, "todolint: %v\n", ee.err)
		}
		return ee.code
	}
	fmt.Fprintf(gs.stderr, "todolint: %v\n", err)
	return exitFailure
}

func newRootCommand(gs *globalState) *cobra.Command {
	check := &checkFlags{}
	root := &cobra.Command{
		Use:   "todolint [paths...]",
		Short: "Report TODO and FIXME markers left in source comments",
		Long: "todolint scans the comments of Rust, Go, C-family and JavaScript sources and\n" +
			"reports every comment that still carries a TODO or FIXME marker.",
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           versionString(),
		PersistentPreRunE: gs.persistentPreRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, gs, check, args)
		},
	}
	root.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	root.SetOut(gs.stdout)
	root.SetErr(gs.stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&gs.flags.config, "config", "c", "", "config file (default: discovered .todolint.{yaml,toml,json})")
	flags.StringVar(&gs.flags.color, "color", "", "colorize output (auto|always|never)")
	flags.BoolVarP(&gs.flags.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&gs.flags.quiet, "quiet", "q", false, "only log warnings and errors")
	flags.StringVar(&gs.flags.logFormat, "log-format", "text", "log output format (text|json)")
	must(cobra.MarkFlagFilename(flags, "config", "yaml", "yml", "toml", "json"))

	bindCheckFlags(root, check)
	root.AddCommand(
		newCheckCommand(gs),
		newTokensCommand(gs),
		newCacheCommand(gs),
		newExplainCommand(gs),
		newVersionCommand(gs),
	)
	return root
}

func (gs *globalState) persistentPreRunE(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(gs.stderr, gs.flags)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	gs.logger = logger
	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
