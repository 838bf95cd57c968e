package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/cache"
	"github.com/phyten/todolint/internal/config"
	"github.com/phyten/todolint/internal/engine"
	engineopts "github.com/phyten/todolint/internal/engine/opts"
	"github.com/phyten/todolint/internal/execx"
	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/output"
	"github.com/phyten/todolint/internal/progress"
	"github.com/phyten/todolint/internal/termcolor"
)

// checkFlags はチェック系フラグの値です。設定ファイルや環境変数より優先されるのは
// 明示的に指定されたフラグだけです。
type checkFlags struct {
	typ            string
	root           string
	paths          []string
	excludes       []string
	pathRegex      []string
	excludeTypical bool
	langs          []string
	maxFileBytes   int
	jobs           int
	noGit          bool
	cache          bool
	cacheDir       string

	output   string
	fields   string
	sort     string
	truncate int
	exitCode bool

	progress   bool
	noProgress bool
}

func newCheckCommand(gs *globalState) *cobra.Command {
	f := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Scan files for TODO and FIXME comments (default command)",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, gs, f, args)
		},
	}
	bindCheckFlags(cmd, f)
	return cmd
}

func bindCheckFlags(cmd *cobra.Command, f *checkFlags) {
	defaults := engineopts.Defaults(".")
	flags := cmd.Flags()
	flags.StringVarP(&f.typ, "type", "t", defaults.Type, "markers to report (todo|fixme|both)")
	flags.StringVar(&f.root, "root", ".", "directory to scan")
	flags.StringSliceVarP(&f.paths, "path", "p", nil, "limit the scan to these paths (repeatable, comma separated)")
	flags.StringSliceVarP(&f.excludes, "exclude", "x", nil, "glob patterns to skip (repeatable)")
	flags.StringSliceVar(&f.pathRegex, "path-regex", nil, "only scan paths matching any of these regexes")
	flags.BoolVar(&f.excludeTypical, "exclude-typical", defaults.ExcludeTypical, "skip vendor, node_modules, minified and generated files")
	flags.StringSliceVarP(&f.langs, "lang", "l", nil, "only scan these languages (rust, go, c, cpp, java, javascript, ...)")
	flags.IntVar(&f.maxFileBytes, "max-file-bytes", defaults.MaxFileBytes, "skip files larger than this (0 = unlimited)")
	flags.IntVarP(&f.jobs, "jobs", "j", defaults.Jobs, "parallel workers")
	flags.BoolVar(&f.noGit, "no-git", false, "walk the file system instead of asking git for the file list")
	flags.BoolVar(&f.cache, "cache", false, "reuse results for unchanged files")
	flags.StringVar(&f.cacheDir, "cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/todolint)")

	flags.StringVarP(&f.output, "output", "o", "pretty", "output format (pretty|table|tsv|json|ndjson|csv|markdown|sarif)")
	flags.StringVar(&f.fields, "fields", "", "columns for table formats (kind,lint,file,line,col,location,end,lang,message,text,markers)")
	flags.StringVar(&f.sort, "sort", "", "sort keys, e.g. kind,-file (file,line,col,kind,lang,location)")
	flags.IntVar(&f.truncate, "truncate", 0, "truncate TEXT and MESSAGE cells to N columns (0 = unlimited)")
	flags.BoolVar(&f.exitCode, "exit-code", false, "exit with status 1 when markers are found")

	flags.BoolVar(&f.progress, "progress", false, "force progress output even when stderr is not a terminal")
	flags.BoolVar(&f.noProgress, "no-progress", false, "disable progress output")
	must(cmd.MarkFlagDirname("root"))
}

// layer は明示されたフラグだけを設定層に変換します。
func (f *checkFlags) layer(cmd *cobra.Command, args []string) config.Config {
	var cfg config.Config
	changed := cmd.Flags().Changed
	if changed("type") {
		cfg.Engine.Type = &f.typ
	}
	if changed("root") {
		cfg.Engine.Root = &f.root
	}
	if changed("path") || len(args) > 0 {
		paths := append(append([]string{}, f.paths...), args...)
		cfg.Engine.Paths = &paths
	}
	if changed("exclude") {
		cfg.Engine.Excludes = &f.excludes
	}
	if changed("path-regex") {
		cfg.Engine.PathRegex = &f.pathRegex
	}
	if changed("exclude-typical") {
		cfg.Engine.ExcludeTypical = &f.excludeTypical
	}
	if changed("lang") {
		cfg.Engine.Langs = &f.langs
	}
	if changed("max-file-bytes") {
		cfg.Engine.MaxFileBytes = &f.maxFileBytes
	}
	if changed("jobs") {
		cfg.Engine.Jobs = &f.jobs
	}
	if changed("no-git") {
		cfg.Engine.NoGit = &f.noGit
	}
	if changed("cache") {
		cfg.Engine.Cache = &f.cache
	}
	if changed("cache-dir") {
		cfg.Engine.CacheDir = &f.cacheDir
	}
	if changed("output") {
		cfg.UI.Output = &f.output
	}
	if changed("fields") {
		cfg.UI.Fields = &f.fields
	}
	if changed("sort") {
		cfg.UI.Sort = &f.sort
	}
	if changed("truncate") {
		cfg.UI.Truncate = &f.truncate
	}
	if changed("exit-code") {
		cfg.UI.ExitCode = &f.exitCode
	}
	return cfg
}

// resolvedCheck は全ての設定層を統合した結果です。
type resolvedCheck struct {
	opts   engine.Options
	engine config.EngineSettings
	ui     config.UISettings
}

// resolveCheck merges defaults, the config file, TODOLINT_* variables and
// explicit flags, in that order.
func resolveCheck(cmd *cobra.Command, gs *globalState, f *checkFlags, args []string) (resolvedCheck, error) {
	var rc resolvedCheck
	flagLayer := f.layer(cmd, args)

	discoverFrom := "."
	if flagLayer.Engine.Root != nil {
		discoverFrom = *flagLayer.Engine.Root
	}
	layers, err := config.LoadLayers(discoverFrom, gs.flags.config, gs.getenv)
	if err != nil {
		return rc, err
	}
	if layers.Path != "" {
		gs.logger.WithFields(logrus.Fields{"path": layers.Path, "where": layers.Where}).Debug("loaded config")
	}
	if gs.flags.color != "" {
		flagLayer.UI.Color = &gs.flags.color
	}

	defaults := engineopts.Defaults(".")
	rc.engine = config.MergeEngine(config.EngineSettingsFromOptions(defaults),
		layers.File.Engine, layers.Env.Engine, flagLayer.Engine)
	rc.ui, err = config.NormalizeUI(config.MergeUI(config.DefaultUISettings(),
		layers.File.UI, layers.Env.UI, flagLayer.UI))
	if err != nil {
		return rc, err
	}

	rc.opts = defaults
	rc.engine.ApplyToOptions(&rc.opts)
	if err := engineopts.NormalizeAndValidate(&rc.opts); err != nil {
		return rc, err
	}
	return rc, nil
}

func runCheck(cmd *cobra.Command, gs *globalState, f *checkFlags, args []string) error {
	rc, err := resolveCheck(cmd, gs, f, args)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	spec, err := ParseSortSpec(rc.ui.Sort)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	fields, err := output.ResolveFields(rc.ui.Fields)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}

	opts := rc.opts
	opts.Logger = gs.logger
	opts.Runner = execx.DefaultRunner(gs.logger)
	opts.Progress = progress.ShouldShowProgress(f.progress, f.noProgress)
	if opts.Progress {
		opts.ProgressObserver = progress.NewAutoObserver(gs.stderr, gs.logger)
	}
	if rc.engine.Cache {
		opts.Cache = openCache(gs, rc.engine.CacheDir)
	}

	res, err := engine.Run(cmd.Context(), opts)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	for _, fe := range res.Errors {
		gs.logger.WithFields(logrus.Fields{"file": fe.File, "stage": fe.Stage}).Warn(fe.Message)
	}
	ApplySort(res.Findings, spec)

	mode, err := termcolor.ParseMode(rc.ui.Color)
	if err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	stdout, _ := gs.stdout.(*os.File)
	palette := termcolor.NewPalette(termcolor.Resolve(mode, stdout, gs.env), termcolor.DetectScheme(gs.env))

	err = output.Write(gs.stdout, rc.ui.Output, res, output.Options{
		Fields:   fields,
		Truncate: rc.ui.Truncate,
		Palette:  palette,
		Tool:     output.Tool{Name: "todolint", Version: version, URI: lint.DocsURL},
	})
	if err != nil {
		return &exitError{code: exitFailure, err: fmt.Errorf("write %s output: %w", rc.ui.Output, err)}
	}
	if rc.ui.ExitCode && res.Total > 0 {
		return &exitError{code: exitFindings}
	}
	return nil
}

// openCache は失敗してもキャッシュなしで続行します。
func openCache(gs *globalState, dir string) *cache.Cache {
	c, err := cache.Open(dir)
	if err != nil {
		gs.logger.WithError(err).Warn("cache disabled")
		return nil
	}
	gs.logger.WithField("dir", c.Dir()).Debug("using cache")
	return c
}
