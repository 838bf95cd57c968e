package engine

import (
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/phyten/todolint/internal/cache"
	"github.com/phyten/todolint/internal/execx"
	"github.com/phyten/todolint/internal/model"
	"github.com/phyten/todolint/internal/progress"
)

// FileError は 1 ファイルの処理に失敗した際の情報を表す
type FileError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	Type              string // todo|fixme|both
	Root              string
	Paths             []string
	Excludes          []string
	ExcludeTypical    bool
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp `json:"-"`
	DetectLangs       []string
	MaxFileBytes      int
	Jobs              int
	NoGit             bool
	Progress          bool

	Cache            *cache.Cache       `json:"-"`
	Logger           logrus.FieldLogger `json:"-"`
	Runner           execx.Runner       `json:"-"`
	ProgressObserver progress.Observer  `json:"-"`
}

// Result は出力
type Result struct {
	Findings   []model.Finding `json:"findings"`
	Files      int             `json:"files"`
	Skipped    int             `json:"skipped"`
	Total      int             `json:"total"`
	ElapsedMS  int64           `json:"elapsed_ms"`
	Errors     []FileError     `json:"errors,omitempty"`
	ErrorCount int             `json:"error_count"`
}

// CountKind returns how many findings carry the given marker kind.
func (r *Result) CountKind(kind string) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, f := range r.Findings {
		if f.Kind == kind {
			n++
		}
	}
	return n
}
