package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/todolint/internal/engine/opts"
)

// EnvPrefix は環境変数名の接頭辞です。
const EnvPrefix = "TODOLINT_"

func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	lookup := func(key string) string {
		return strings.TrimSpace(getenv(EnvPrefix + key))
	}
	setString := func(target **string, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		*target = &raw
	}
	setList := func(target **[]string, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		list := engineopts.SplitMulti([]string{raw})
		if list == nil {
			list = []string{}
		}
		*target = &list
	}
	setBool := func(target **bool, key string) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, EnvPrefix+key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}
	setInt := func(target **int, key string, min, max int) {
		raw := lookup(key)
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, EnvPrefix+key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		*target = &v
	}

	setString(&cfg.Engine.Type, "TYPE")
	setString(&cfg.Engine.Root, "ROOT")
	setList(&cfg.Engine.Paths, "PATH")
	setList(&cfg.Engine.Excludes, "EXCLUDE")
	setList(&cfg.Engine.PathRegex, "PATH_REGEX")
	setBool(&cfg.Engine.ExcludeTypical, "EXCLUDE_TYPICAL")
	setList(&cfg.Engine.Langs, "LANG")
	setInt(&cfg.Engine.MaxFileBytes, "MAX_FILE_BYTES", 0, math.MaxInt)
	// 上限は NormalizeAndValidate に任せ、どの入力経路でも同じエラーにする。
	setInt(&cfg.Engine.Jobs, "JOBS", 0, math.MaxInt)
	setBool(&cfg.Engine.NoGit, "NO_GIT")
	setBool(&cfg.Engine.Cache, "CACHE")
	setString(&cfg.Engine.CacheDir, "CACHE_DIR")

	setString(&cfg.UI.Output, "OUTPUT")
	setString(&cfg.UI.Color, "COLOR")
	setString(&cfg.UI.Fields, "FIELDS")
	setString(&cfg.UI.Sort, "SORT")
	setInt(&cfg.UI.Truncate, "TRUNCATE", 0, math.MaxInt)
	setBool(&cfg.UI.ExitCode, "EXIT_CODE")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
