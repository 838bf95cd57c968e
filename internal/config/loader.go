package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	engineopts "github.com/phyten/todolint/internal/engine/opts"
)

var engineKeyMap = map[string]string{
	"type":            "type",
	"kind":            "type",
	"root":            "root",
	"repo":            "root",
	"path":            "path",
	"paths":           "path",
	"exclude":         "exclude",
	"excludes":        "exclude",
	"path_regex":      "path_regex",
	"path_regexes":    "path_regex",
	"exclude_typical": "exclude_typical",
	"lang":            "lang",
	"langs":           "lang",
	"detect_langs":    "lang",
	"max_file_bytes":  "max_file_bytes",
	"max_bytes":       "max_file_bytes",
	"jobs":            "jobs",
	"no_git":          "no_git",
	"cache":           "cache",
	"cache_dir":       "cache_dir",
}

var uiKeyMap = map[string]string{
	"output":    "output",
	"format":    "output",
	"color":     "color",
	"fields":    "fields",
	"sort":      "sort",
	"truncate":  "truncate",
	"exit_code": "exit_code",
}

func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var raw map[string]any
	switch ext {
	case ".yaml", ".yml":
		if decodeErr := yaml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".toml":
		if decodeErr := toml.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	case ".json":
		if decodeErr := json.Unmarshal(data, &raw); decodeErr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if raw == nil {
		return cfg, nil
	}
	decoded, err := decodeConfigMap(raw)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return decoded, nil
}

func decodeConfigMap(raw map[string]any) (Config, error) {
	var cfg Config
	engineSection := make(map[string]any)
	uiSection := make(map[string]any)

	if block, ok := raw["engine"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("engine: %w", err)
		}
		if err := fillSection(engineSection, sub, engineKeyMap, "engine"); err != nil {
			return cfg, err
		}
	}
	if block, ok := raw["ui"]; ok {
		sub, err := toStringKeyMap(block)
		if err != nil {
			return cfg, fmt.Errorf("ui: %w", err)
		}
		if err := fillSection(uiSection, sub, uiKeyMap, "ui"); err != nil {
			return cfg, err
		}
	}

	for key, value := range raw {
		norm := normalizeKey(key)
		switch norm {
		case "engine", "ui":
			continue
		default:
			if canonical, ok := engineKeyMap[norm]; ok {
				engineSection[canonical] = value
				continue
			}
			if canonical, ok := uiKeyMap[norm]; ok {
				uiSection[canonical] = value
				continue
			}
			return cfg, fmt.Errorf("unknown config key: %s", key)
		}
	}

	if err := assignEngine(engineSection, &cfg.Engine); err != nil {
		return cfg, fmt.Errorf("engine: %w", err)
	}
	if err := assignUI(uiSection, &cfg.UI); err != nil {
		return cfg, fmt.Errorf("ui: %w", err)
	}
	return cfg, nil
}

func fillSection(dst, src map[string]any, allowed map[string]string, section string) error {
	for key, value := range src {
		canonical, ok := allowed[normalizeKey(key)]
		if !ok {
			return fmt.Errorf("unknown %s key: %s", section, key)
		}
		dst[canonical] = value
	}
	return nil
}

func assignEngine(section map[string]any, dst *EngineConfig) error {
	for key, value := range section {
		var err error
		switch key {
		case "type":
			dst.Type, err = stringField(value, key)
		case "root":
			dst.Root, err = stringField(value, key)
		case "path":
			dst.Paths, err = listField(value, key)
		case "exclude":
			dst.Excludes, err = listField(value, key)
		case "path_regex":
			dst.PathRegex, err = listField(value, key)
		case "exclude_typical":
			dst.ExcludeTypical, err = boolField(value, key)
		case "lang":
			dst.Langs, err = listField(value, key)
		case "max_file_bytes":
			dst.MaxFileBytes, err = intField(value, key)
		case "jobs":
			dst.Jobs, err = intField(value, key)
		case "no_git":
			dst.NoGit, err = boolField(value, key)
		case "cache":
			dst.Cache, err = boolField(value, key)
		case "cache_dir":
			dst.CacheDir, err = stringField(value, key)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func assignUI(section map[string]any, dst *UIConfig) error {
	for key, value := range section {
		var err error
		switch key {
		case "output":
			dst.Output, err = stringField(value, key)
		case "color":
			dst.Color, err = stringField(value, key)
		case "fields":
			dst.Fields, err = stringField(value, key)
		case "sort":
			dst.Sort, err = stringField(value, key)
		case "truncate":
			dst.Truncate, err = intField(value, key)
		case "exit_code":
			dst.ExitCode, err = boolField(value, key)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func stringField(value any, field string) (*string, error) {
	s, err := expectString(value, field)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	return &s, nil
}

func listField(value any, field string) (*[]string, error) {
	list, err := expectStringList(value, field)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func boolField(value any, field string) (*bool, error) {
	b, err := expectBool(value, field)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func intField(value any, field string) (*int, error) {
	n, err := expectInt(value, field)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func expectString(value any, field string) (string, error) {
	if value == nil {
		return "", fmt.Errorf("%s cannot be null", field)
	}
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected string for %s, got %T", field, value)
}

func expectBool(value any, field string) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return engineopts.ParseBool(v, field)
	default:
		return false, fmt.Errorf("expected bool for %s, got %T", field, value)
	}
}

func expectInt(value any, field string) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("expected integer for %s, got %v", field, value)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %v", field, value)
		}
		return n, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, fmt.Errorf("invalid integer value for %s: %q", field, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer for %s, got %T", field, value)
	}
}

func expectStringList(value any, field string) ([]string, error) {
	switch v := value.(type) {
	case string:
		parts := engineopts.SplitMulti([]string{v})
		return normalizeList(parts), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, err := expectString(item, field)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return normalizeList(out), nil
	case []string:
		return normalizeList(v), nil
	default:
		return nil, fmt.Errorf("expected string or list for %s, got %T", field, value)
	}
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func toStringKeyMap(v any) (map[string]any, error) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, value := range typed {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("non-string key: %v", k)
			}
			out[key] = value
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", v)
	}
}

func normalizeKey(key string) string {
	norm := strings.ToLower(strings.TrimSpace(key))
	norm = strings.ReplaceAll(norm, "-", "_")
	return norm
}

// Layers は設定ファイルと環境変数から読み込んだ層です。
type Layers struct {
	Path  string
	Where string
	File  Config
	Env   Config
}

// LoadLayers discovers the config file, loads it and reads TODOLINT_*
// variables. An empty explicit path falls back to TODOLINT_CONFIG.
func LoadLayers(root, explicit string, getenv func(string) string) (Layers, error) {
	var layers Layers
	if getenv == nil {
		getenv = os.Getenv
	}
	if strings.TrimSpace(explicit) == "" {
		explicit = getenv(EnvPrefix + "CONFIG")
	}
	path, where, err := Find(root, explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return layers, fmt.Errorf("find config: %w", err)
	}
	layers.Path, layers.Where = path, where
	if layers.File, err = Load(path); err != nil {
		return layers, err
	}
	if layers.Env, err = FromEnv(getenv); err != nil {
		return layers, fmt.Errorf("environment: %w", err)
	}
	return layers, nil
}
