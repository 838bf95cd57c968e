package termcolor

import (
	"strconv"
	"strings"
)

type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// BackgroundEnv overrides background detection (light|dark).
const BackgroundEnv = "TODOLINT_BACKGROUND"

// DetectScheme は端末の背景が明るいか暗いかを推定します。
// BackgroundEnv、COLORFGBG、TERM の順に確認し、判断できなければ暗い背景とみなします。
func DetectScheme(env map[string]string) Scheme {
	if env == nil {
		return SchemeDark
	}
	switch strings.ToLower(strings.TrimSpace(env[BackgroundEnv])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if raw := strings.TrimSpace(env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		bgRaw := strings.TrimSpace(parts[len(parts)-1])
		if bgRaw == "" && len(parts) >= 2 {
			bgRaw = strings.TrimSpace(parts[len(parts)-2])
		}
		if bg, err := strconv.Atoi(bgRaw); err == nil && bg >= 0 {
			if bg >= 7 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}
