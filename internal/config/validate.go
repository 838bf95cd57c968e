package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/todolint/internal/engine/opts"
)

// CanonicalizeColor accepts auto|always|never and their common synonyms.
func CanonicalizeColor(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return "auto", nil
	case "always", "on", "force":
		return "always", nil
	case "never", "off", "none":
		return "never", nil
	default:
		return "", fmt.Errorf("invalid color: %s", raw)
	}
}

func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Fields = strings.TrimSpace(values.Fields)
	values.Sort = strings.TrimSpace(values.Sort)

	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	if values.Truncate < 0 {
		return values, fmt.Errorf("truncate must be >= 0")
	}
	return values, nil
}
