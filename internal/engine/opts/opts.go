package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/todolint/internal/detect"
	"github.com/phyten/todolint/internal/engine"
)

const (
	maxJobs = 64
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}
)

// Outputs lists the accepted --output values.
var Outputs = []string{"pretty", "table", "tsv", "json", "ndjson", "csv", "markdown", "sarif"}

// Defaults returns the baseline options shared by the CLI and config layers.
func Defaults(root string) engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		Type:           "both",
		Root:           root,
		Jobs:           jobs,
		ExcludeTypical: true,
		MaxFileBytes:   4 << 20,
	}
}

// NormalizeAndValidate ensures the options are canonical and within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	o.Type = strings.ToLower(strings.TrimSpace(o.Type))
	switch o.Type {
	case "", "both":
		o.Type = "both"
	case "todo", "fixme":
	default:
		return fmt.Errorf("invalid --type: %s", o.Type)
	}

	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	if o.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes must be >= 0")
	}
	if strings.TrimSpace(o.Root) == "" {
		o.Root = "."
	}

	o.Paths = trimSlice(o.Paths)
	o.Excludes = trimSlice(o.Excludes)
	o.PathRegex = trimSlice(o.PathRegex)
	o.DetectLangs = trimSlice(o.DetectLangs)
	if len(o.DetectLangs) > 0 {
		o.DetectLangs = detect.CanonicalDetectLangs(o.DetectLangs)
		for _, lang := range o.DetectLangs {
			if !detect.KnownLanguage(lang) {
				return fmt.Errorf("invalid --lang: %s (known: %s)", lang, strings.Join(detect.Languages(), ", "))
			}
		}
	}

	compiled, err := engine.CompilePathRegex(o.PathRegex)
	if err != nil {
		return fmt.Errorf("invalid --path-regex: %w", err)
	}
	o.PathRegexCompiled = compiled

	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the --output value.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "":
		return "pretty", nil
	case "md":
		return "markdown", nil
	case "jsonl":
		return "ndjson", nil
	}
	for _, o := range Outputs {
		if v == o {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --output: %s", value)
}

// SplitMulti flattens repeated values and comma-separated lists.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}

func trimSlice(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0]
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
