package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/phyten/todolint/internal/cache"
	"github.com/phyten/todolint/internal/detect"
	"github.com/phyten/todolint/internal/lexer"
	"github.com/phyten/todolint/internal/lint"
	"github.com/phyten/todolint/internal/model"
	"github.com/phyten/todolint/internal/progress"
	"github.com/phyten/todolint/internal/source"
)

// maxPosSpace bounds a single file so its offsets fit in a source.Pos.
const maxPosSpace = math.MaxUint32 - 1

// loaded is one file that survived reading and language detection.
type loaded struct {
	path    string
	lang    string
	dialect *lexer.Dialect
	data    []byte
}

// Run は指定されたオプションに従ってファイルを走査し、コメント中の TODO/FIXME を返します。
//
// ファイル単位の読み込み失敗は Result.Errors に集約され、Run 自体は失敗しません。
// 返すエラーはファイル一覧の取得失敗かコンテキストのキャンセルです。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}
	if strings.TrimSpace(opts.Root) == "" {
		opts.Root = "."
	}
	want, err := kindFilter(opts.Type)
	if err != nil {
		return nil, err
	}
	log := opts.Logger

	var tracker *progress.Tracker
	if opts.Progress {
		tracker = progress.NewTracker(opts.ProgressObserver, progress.Config{})
	}

	paths, err := listFiles(ctx, opts)
	if err != nil {
		return nil, err
	}
	paths = filterPathsByRegex(paths, opts.PathRegexCompiled)
	paths = filterByName(paths, opts.DetectLangs)
	log.WithField("candidates", len(paths)).Debug("listed files")

	findings, scanned, skipped, errs, err := scanAll(ctx, opts, paths, tracker)
	if err != nil {
		return nil, err
	}
	tracker.Done()

	var out []model.Finding
	for _, fs := range findings {
		for _, f := range fs {
			if want[f.Kind] {
				out = append(out, f)
			}
		}
	}
	sortFindings(out)
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	res := &Result{
		Findings:   out,
		Files:      scanned,
		Skipped:    skipped,
		Total:      len(out),
		ElapsedMS:  msSince(start),
		Errors:     errs,
		ErrorCount: len(errs),
	}
	log.WithFields(logrus.Fields{
		"files":    res.Files,
		"skipped":  res.Skipped,
		"findings": res.Total,
		"errors":   res.ErrorCount,
		"elapsed":  time.Since(start).Round(time.Millisecond).String(),
	}).Debug("scan finished")
	return res, nil
}

func kindFilter(typ string) (map[string]bool, error) {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "both":
		return map[string]bool{lint.Todo.Text(): true, lint.Fixme.Text(): true}, nil
	case "todo":
		return map[string]bool{lint.Todo.Text(): true}, nil
	case "fixme":
		return map[string]bool{lint.Fixme.Text(): true}, nil
	default:
		return nil, fmt.Errorf("invalid --type: %s", typ)
	}
}

// filterByName drops files whose name maps to no dialect or to a language
// outside langs. Extension-less files stay for shebang detection.
func filterByName(paths []string, langs []string) []string {
	out := paths[:0]
	for _, p := range paths {
		info := detect.FromPath(p)
		if info.Name == "" {
			if !strings.Contains(filepath.Base(p), ".") {
				out = append(out, p)
			}
			continue
		}
		if !detect.KnownLanguage(info.Name) || !detect.MatchesLang(info, langs) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// scanAll reads and checks each file in one worker pass. Content is not kept
// past toFindings, and every file is placed at base 1 on its own.
func scanAll(ctx context.Context, opts Options, paths []string, tracker *progress.Tracker) ([][]model.Finding, int, int, []FileError, error) {
	tracker.Stage(progress.StageCheck, len(paths))
	out := make([][]model.Finding, len(paths))
	done := make([]bool, len(paths))
	errSlots := make([]*FileError, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Jobs)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer tracker.Advance(1)
			lf, reason, err := readOne(opts, p)
			switch {
			case err != nil:
				errSlots[i] = &FileError{File: p, Stage: "read", Message: strings.TrimSpace(err.Error())}
				opts.Logger.WithError(err).WithField("file", p).Warn("read failed")
			case reason != "":
				opts.Logger.WithFields(logrus.Fields{"file": p, "reason": reason}).Debug("skipped")
			default:
				f := source.NewFile(lf.path, 1, lf.data)
				out[i] = toFindings(f, lf.lang, checkOne(opts, *lf, f))
				done[i] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, 0, nil, err
	}

	var errs []FileError
	scanned, skipped := 0, 0
	for i := range paths {
		switch {
		case done[i]:
			scanned++
		case errSlots[i] != nil:
			errs = append(errs, *errSlots[i])
		default:
			skipped++
		}
	}
	return out, scanned, skipped, errs, nil
}

// readOne loads a file. A non-empty reason means the file was skipped.
func readOne(opts Options, rel string) (*loaded, string, error) {
	full := filepath.Join(opts.Root, filepath.FromSlash(rel))
	st, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "deleted", nil
		}
		return nil, "", err
	}
	if opts.MaxFileBytes > 0 && st.Size() > int64(opts.MaxFileBytes) || st.Size() >= maxPosSpace {
		return nil, "too large", nil
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, "", err
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, "binary", nil
	}
	info := detect.FromPathAndContent(rel, data)
	if !detect.MatchesLang(info, opts.DetectLangs) {
		return nil, "language filtered", nil
	}
	d, ok := detect.Dialect(info.Name)
	if !ok {
		return nil, "unknown language", nil
	}
	return &loaded{path: rel, lang: detect.NormalizeLangName(info.Name), dialect: d, data: data}, "", nil
}

func checkOne(opts Options, lf loaded, f *source.File) []lint.Event {
	if opts.Cache == nil {
		return lint.Collect(f.Base, f.Content, lexer.New(f.Content, lf.dialect))
	}
	key := cache.KeyFor(lf.dialect.Name(), f.Content)
	events, ok, err := opts.Cache.Get(key, f.Base)
	if err != nil {
		opts.Logger.WithError(err).WithField("file", lf.path).Warn("cache read failed")
	}
	if ok {
		return events
	}
	events = lint.Collect(f.Base, f.Content, lexer.New(f.Content, lf.dialect))
	if err := opts.Cache.Put(key, f.Base, events); err != nil {
		opts.Logger.WithError(err).WithField("file", lf.path).Warn("cache write failed")
	}
	return events
}

func sortFindings(fs []model.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		a, b := fs[i], fs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Comment.ByteStart != b.Comment.ByteStart {
			return a.Comment.ByteStart < b.Comment.ByteStart
		}
		return kindRank(a.Kind) < kindRank(b.Kind)
	})
}

func kindRank(kind string) int {
	if kind == lint.Fixme.Text() {
		return 1
	}
	return 0
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
