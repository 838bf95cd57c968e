package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ColorMode は --color の値です。
type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	}
	return "auto"
}

// ParseMode は --color の値を解釈します。
func ParseMode(v string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always", "on", "force":
		return ModeAlways, nil
	case "never", "off", "none":
		return ModeNever, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
}

// EnvMap splits KEY=VALUE entries as returned by os.Environ.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		env[key] = value
	}
	return env
}

// Resolve turns a parsed mode into on/off for stdout.
func Resolve(mode ColorMode, stdout *os.File, env map[string]string) bool {
	if mode == ModeAuto {
		mode = DetectMode(stdout, env)
	}
	return mode == ModeAlways
}

// envRule maps one environment convention to a mode. Rules are checked in
// order and the first match wins.
type envRule struct {
	key   string
	match func(string) bool
	mode  ColorMode
}

var envRules = []envRule{
	{"TERM", func(v string) bool { return strings.EqualFold(v, "dumb") }, ModeNever},
	{"NO_COLOR", func(v string) bool { return v != "" }, ModeNever},
	{"CLICOLOR", func(v string) bool { return v == "0" }, ModeNever},
	{"CLICOLOR_FORCE", forceColor, ModeAlways},
	{"FORCE_COLOR", forceColor, ModeAlways},
}

// DetectMode returns ModeAlways or ModeNever for auto-detection. Output that
// is not a file (buffers in tests, pipes wrapped by writers) is never colored.
// Otherwise TERM=dumb, NO_COLOR, CLICOLOR=0, CLICOLOR_FORCE and FORCE_COLOR
// are consulted before the TTY check.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	for _, r := range envRules {
		if r.match(strings.TrimSpace(env[r.key])) {
			return r.mode
		}
	}
	if isTerminal(stdout) {
		return ModeAlways
	}
	return ModeNever
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	return v != "" && v != "0"
}
