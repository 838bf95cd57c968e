package config

import (
	"strings"

	"github.com/phyten/todolint/internal/engine"
)

type EngineConfig struct {
	Type           *string   `yaml:"type" toml:"type" json:"type"`
	Root           *string   `yaml:"root" toml:"root" json:"root"`
	Paths          *[]string `yaml:"path" toml:"path" json:"path"`
	Excludes       *[]string `yaml:"exclude" toml:"exclude" json:"exclude"`
	PathRegex      *[]string `yaml:"path_regex" toml:"path_regex" json:"path_regex"`
	ExcludeTypical *bool     `yaml:"exclude_typical" toml:"exclude_typical" json:"exclude_typical"`
	Langs          *[]string `yaml:"lang" toml:"lang" json:"lang"`
	MaxFileBytes   *int      `yaml:"max_file_bytes" toml:"max_file_bytes" json:"max_file_bytes"`
	Jobs           *int      `yaml:"jobs" toml:"jobs" json:"jobs"`
	NoGit          *bool     `yaml:"no_git" toml:"no_git" json:"no_git"`
	Cache          *bool     `yaml:"cache" toml:"cache" json:"cache"`
	CacheDir       *string   `yaml:"cache_dir" toml:"cache_dir" json:"cache_dir"`
}

type UIConfig struct {
	Output   *string `yaml:"output" toml:"output" json:"output"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	Fields   *string `yaml:"fields" toml:"fields" json:"fields"`
	Sort     *string `yaml:"sort" toml:"sort" json:"sort"`
	Truncate *int    `yaml:"truncate" toml:"truncate" json:"truncate"`
	ExitCode *bool   `yaml:"exit_code" toml:"exit_code" json:"exit_code"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	Type           string
	Root           string
	Paths          []string
	Excludes       []string
	PathRegex      []string
	ExcludeTypical bool
	Langs          []string
	MaxFileBytes   int
	Jobs           int
	NoGit          bool
	Cache          bool
	CacheDir       string
}

type UISettings struct {
	Output   string
	Color    string
	Fields   string
	Sort     string
	Truncate int
	ExitCode bool
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Type:           opts.Type,
		Root:           opts.Root,
		Paths:          cloneStrings(opts.Paths),
		Excludes:       cloneStrings(opts.Excludes),
		PathRegex:      cloneStrings(opts.PathRegex),
		ExcludeTypical: opts.ExcludeTypical,
		Langs:          cloneStrings(opts.DetectLangs),
		MaxFileBytes:   opts.MaxFileBytes,
		Jobs:           opts.Jobs,
		NoGit:          opts.NoGit,
	}
}

// ApplyToOptions copies the settings into opts. Cache and CacheDir are left
// to the caller, which owns opening the cache.
func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Type = s.Type
	if trimmed := strings.TrimSpace(s.Root); trimmed != "" {
		opts.Root = trimmed
	}
	opts.Paths = cloneStrings(s.Paths)
	opts.Excludes = cloneStrings(s.Excludes)
	opts.PathRegex = cloneStrings(s.PathRegex)
	opts.ExcludeTypical = s.ExcludeTypical
	opts.DetectLangs = cloneStrings(s.Langs)
	opts.MaxFileBytes = s.MaxFileBytes
	opts.Jobs = s.Jobs
	opts.NoGit = s.NoGit
}

func DefaultUISettings() UISettings {
	return UISettings{
		Output: "pretty",
		Color:  "auto",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
