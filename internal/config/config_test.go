package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/phyten/todolint/internal/engine"
)

func boolPtr(v bool) *bool             { return &v }
func strPtr(v string) *string          { return &v }
func intPtr(v int) *int                { return &v }
func stringsPtr(v ...string) *[]string { return &v }

func TestMergeEnginePrecedence(t *testing.T) {
	base := EngineSettings{Type: "both", ExcludeTypical: true, MaxFileBytes: 1024, Excludes: []string{"vendor/**"}}
	file := EngineConfig{Type: strPtr("todo"), Jobs: intPtr(4), Langs: stringsPtr("go")}
	env := EngineConfig{Type: strPtr("fixme"), ExcludeTypical: boolPtr(false)}
	flags := EngineConfig{Excludes: stringsPtr(), CacheDir: strPtr("  /tmp/c  ")}

	got := MergeEngine(base, file, env, flags)
	if got.Type != "fixme" {
		t.Fatalf("環境変数が設定ファイルより優先されるはず: %q", got.Type)
	}
	if got.ExcludeTypical {
		t.Fatal("expected ExcludeTypical false")
	}
	if got.Jobs != 4 || got.MaxFileBytes != 1024 {
		t.Fatalf("unexpected ints: jobs=%d max=%d", got.Jobs, got.MaxFileBytes)
	}
	if !reflect.DeepEqual(got.Langs, []string{"go"}) {
		t.Fatalf("unexpected langs: %v", got.Langs)
	}
	if got.Excludes == nil || len(got.Excludes) != 0 {
		t.Fatalf("空リストの層は既定値を空にするはず: %#v", got.Excludes)
	}
	if got.CacheDir != "/tmp/c" {
		t.Fatalf("expected trimmed cache dir, got %q", got.CacheDir)
	}
	if !reflect.DeepEqual(base.Excludes, []string{"vendor/**"}) {
		t.Fatalf("base must not be modified: %v", base.Excludes)
	}
}

func TestMergeUIDefaults(t *testing.T) {
	got := MergeUI(UISettings{}, UIConfig{Fields: strPtr(" file,line ")}, UIConfig{ExitCode: boolPtr(true)})
	if got.Output != "pretty" || got.Color != "auto" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.Fields != "file,line" || !got.ExitCode {
		t.Fatalf("unexpected merge: %+v", got)
	}

	got = MergeUI(DefaultUISettings(), UIConfig{Output: strPtr("sarif"), Truncate: intPtr(40)})
	if got.Output != "sarif" || got.Truncate != 40 {
		t.Fatalf("unexpected merge: %+v", got)
	}
}

func TestEngineSettingsRoundTrip(t *testing.T) {
	opts := engine.Options{
		Type:         "todo",
		Root:         "/repo",
		Paths:        []string{"src"},
		DetectLangs:  []string{"rust"},
		MaxFileBytes: 10,
		Jobs:         2,
		NoGit:        true,
	}
	settings := EngineSettingsFromOptions(opts)
	settings.Paths[0] = "changed"
	if opts.Paths[0] != "src" {
		t.Fatal("EngineSettingsFromOptions must copy slices")
	}

	var out engine.Options
	settings.Root = "  "
	settings.ApplyToOptions(&out)
	if out.Root != "" {
		t.Fatalf("blank root must not overwrite: %q", out.Root)
	}
	if out.Type != "todo" || out.Jobs != 2 || !out.NoGit || !reflect.DeepEqual(out.DetectLangs, []string{"rust"}) {
		t.Fatalf("unexpected options: %+v", out)
	}
	settings.ApplyToOptions(nil)
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"TODOLINT_TYPE":            "fixme",
		"TODOLINT_PATH":            "src, cmd",
		"TODOLINT_EXCLUDE":         "",
		"TODOLINT_EXCLUDE_TYPICAL": "no",
		"TODOLINT_LANG":            "rust,go",
		"TODOLINT_MAX_FILE_BYTES":  "2048",
		"TODOLINT_JOBS":            "3",
		"TODOLINT_CACHE":           "true",
		"TODOLINT_OUTPUT":          "sarif",
		"TODOLINT_TRUNCATE":        "80",
		"TODOLINT_EXIT_CODE":       "1",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Engine.Type == nil || *cfg.Engine.Type != "fixme" {
		t.Fatalf("unexpected type: %v", cfg.Engine.Type)
	}
	if cfg.Engine.Paths == nil || !reflect.DeepEqual(*cfg.Engine.Paths, []string{"src", "cmd"}) {
		t.Fatalf("unexpected paths: %v", cfg.Engine.Paths)
	}
	if cfg.Engine.Excludes != nil {
		t.Fatal("空の環境変数は未設定として扱うはず")
	}
	if cfg.Engine.ExcludeTypical == nil || *cfg.Engine.ExcludeTypical {
		t.Fatal("expected ExcludeTypical false")
	}
	if cfg.Engine.Langs == nil || !reflect.DeepEqual(*cfg.Engine.Langs, []string{"rust", "go"}) {
		t.Fatalf("unexpected langs: %v", cfg.Engine.Langs)
	}
	if ptrInt(cfg.Engine.MaxFileBytes) != 2048 || ptrInt(cfg.Engine.Jobs) != 3 {
		t.Fatalf("unexpected ints: %d %d", ptrInt(cfg.Engine.MaxFileBytes), ptrInt(cfg.Engine.Jobs))
	}
	if cfg.Engine.Cache == nil || !*cfg.Engine.Cache {
		t.Fatal("expected cache true")
	}
	if ptrString(cfg.UI.Output) != "sarif" || ptrInt(cfg.UI.Truncate) != 80 {
		t.Fatalf("unexpected ui: %+v", cfg.UI)
	}
	if cfg.UI.ExitCode == nil || !*cfg.UI.ExitCode {
		t.Fatal("expected exit code true")
	}
}

func TestFromEnvJoinsErrors(t *testing.T) {
	env := map[string]string{
		"TODOLINT_JOBS":   "many",
		"TODOLINT_NO_GIT": "maybe",
		"TODOLINT_TYPE":   "todo",
	}
	cfg, err := FromEnv(func(key string) string { return env[key] })
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"TODOLINT_JOBS", "TODOLINT_NO_GIT"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error should mention %s: %v", key, err)
		}
	}
	if ptrString(cfg.Engine.Type) != "todo" {
		t.Fatal("valid variables should still be applied")
	}
}

func TestFromEnvNil(t *testing.T) {
	cfg, err := FromEnv(nil)
	if err != nil {
		t.Fatalf("FromEnv(nil) error: %v", err)
	}
	if cfg.Engine.Type != nil || cfg.UI.Output != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigFormats(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		".yaml": "type: fixme\npaths:\n  - src\nexclude-typical: false\nmax_bytes: 2048\nui:\n  format: json\n  exit_code: true\n",
		".toml": "kind = \"todo\"\ndetect_langs = [\"rust\"]\njobs = 6\n[ui]\ntruncate = 60\n",
		".json": "{\n  \"engine\": {\"type\": \"both\", \"exclude\": \"vendor/**, dist\", \"cache\": \"yes\"},\n  \"color\": \"never\"\n}\n",
	}

	for ext, content := range cases {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "config"+ext)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			switch ext {
			case ".yaml":
				if ptrString(cfg.Engine.Type) != "fixme" {
					t.Fatalf("yaml type mismatch: %q", ptrString(cfg.Engine.Type))
				}
				if cfg.Engine.Paths == nil || !reflect.DeepEqual(*cfg.Engine.Paths, []string{"src"}) {
					t.Fatalf("yaml paths mismatch: %v", cfg.Engine.Paths)
				}
				if cfg.Engine.ExcludeTypical == nil || *cfg.Engine.ExcludeTypical {
					t.Fatal("yaml exclude_typical should be false")
				}
				if ptrInt(cfg.Engine.MaxFileBytes) != 2048 {
					t.Fatalf("yaml max_file_bytes mismatch: %d", ptrInt(cfg.Engine.MaxFileBytes))
				}
				if ptrString(cfg.UI.Output) != "json" {
					t.Fatalf("yaml output mismatch: %q", ptrString(cfg.UI.Output))
				}
				if cfg.UI.ExitCode == nil || !*cfg.UI.ExitCode {
					t.Fatal("yaml exit_code should be true")
				}
			case ".toml":
				if ptrString(cfg.Engine.Type) != "todo" {
					t.Fatalf("toml type mismatch: %q", ptrString(cfg.Engine.Type))
				}
				if cfg.Engine.Langs == nil || !reflect.DeepEqual(*cfg.Engine.Langs, []string{"rust"}) {
					t.Fatalf("toml lang mismatch: %v", cfg.Engine.Langs)
				}
				if ptrInt(cfg.Engine.Jobs) != 6 || ptrInt(cfg.UI.Truncate) != 60 {
					t.Fatalf("toml ints mismatch: %d %d", ptrInt(cfg.Engine.Jobs), ptrInt(cfg.UI.Truncate))
				}
			case ".json":
				if cfg.Engine.Excludes == nil || !reflect.DeepEqual(*cfg.Engine.Excludes, []string{"vendor/**", "dist"}) {
					t.Fatalf("json exclude mismatch: %v", cfg.Engine.Excludes)
				}
				if cfg.Engine.Cache == nil || !*cfg.Engine.Cache {
					t.Fatal("json cache should be true")
				}
				if ptrString(cfg.UI.Color) != "never" {
					t.Fatalf("json color mismatch: %q", ptrString(cfg.UI.Color))
				}
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown.yaml":  "unknown: value\n",
		"section.yaml":  "ui:\n  type: todo\n",
		"badtype.json":  "{\"jobs\": \"lots\"}",
		"badlist.toml":  "path = 3\n",
		"config.ini":    "type=todo\n",
		"nullstr.yaml":  "type: null\n",
		"fraction.json": "{\"jobs\": 1.5}",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}

	cfg, err := Load("")
	if err != nil || cfg.Engine.Type != nil {
		t.Fatalf("empty path should yield empty config: %+v %v", cfg, err)
	}
}

func TestFindOrder(t *testing.T) {
	repoRoot := filepath.Join(t.TempDir(), "repo")
	if mkErr := os.MkdirAll(filepath.Join(repoRoot, "sub", "dir"), 0o755); mkErr != nil {
		t.Fatalf("mkdir: %v", mkErr)
	}
	repoConfig := filepath.Join(repoRoot, ".todolint.yaml")
	if writeErr := os.WriteFile(repoConfig, []byte("type: todo\n"), 0o644); writeErr != nil {
		t.Fatalf("write repo config: %v", writeErr)
	}
	path, where, err := Find(filepath.Join(repoRoot, "sub", "dir"), "", "", "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if path != repoConfig || where != "cwd-up" {
		t.Fatalf("unexpected result: path=%s where=%s", path, where)
	}

	explicit := filepath.Join(t.TempDir(), "custom.toml")
	if writeErr := os.WriteFile(explicit, []byte("type='fixme'\n"), 0o644); writeErr != nil {
		t.Fatalf("write explicit: %v", writeErr)
	}
	path, where, err = Find(repoRoot, explicit, "", "")
	if err != nil {
		t.Fatalf("Find explicit failed: %v", err)
	}
	if path != explicit || where != "explicit" {
		t.Fatalf("expected explicit config, got path=%s where=%s", path, where)
	}
	if _, _, err = Find(repoRoot, t.TempDir(), "", ""); err == nil {
		t.Fatal("ディレクトリを明示した場合はエラーになるはず")
	}

	xdgHome := t.TempDir()
	if mkErr := os.MkdirAll(filepath.Join(xdgHome, "todolint"), 0o755); mkErr != nil {
		t.Fatalf("mkdir xdg: %v", mkErr)
	}
	xdgPath := filepath.Join(xdgHome, "todolint", "config.json")
	if writeErr := os.WriteFile(xdgPath, []byte("{}"), 0o644); writeErr != nil {
		t.Fatalf("write xdg: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", xdgHome, t.TempDir())
	if err != nil {
		t.Fatalf("Find xdg failed: %v", err)
	}
	if path != xdgPath || where != "xdg" {
		t.Fatalf("expected xdg config, got path=%s where=%s", path, where)
	}

	homeDir := t.TempDir()
	homePath := filepath.Join(homeDir, ".todolint.toml")
	if writeErr := os.WriteFile(homePath, []byte("type='both'\n"), 0o644); writeErr != nil {
		t.Fatalf("write home: %v", writeErr)
	}
	path, where, err = Find(t.TempDir(), "", t.TempDir(), homeDir)
	if err != nil {
		t.Fatalf("Find home failed: %v", err)
	}
	if path != homePath || where != "home" {
		t.Fatalf("expected home config, got path=%s where=%s", path, where)
	}
}

func TestLoadLayers(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".todolint.yaml"), []byte("type: todo\njobs: 2\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := map[string]string{
		"HOME":            t.TempDir(),
		"XDG_CONFIG_HOME": t.TempDir(),
		"TODOLINT_JOBS":   "5",
	}
	layers, err := LoadLayers(root, "", func(key string) string { return env[key] })
	if err != nil {
		t.Fatalf("LoadLayers error: %v", err)
	}
	if layers.Where != "cwd-up" || filepath.Base(layers.Path) != ".todolint.yaml" {
		t.Fatalf("unexpected location: %s %s", layers.Where, layers.Path)
	}
	merged := MergeEngine(EngineSettings{Type: "both"}, layers.File.Engine, layers.Env.Engine)
	if merged.Type != "todo" || merged.Jobs != 5 {
		t.Fatalf("unexpected merge: %+v", merged)
	}

	env["TODOLINT_CONFIG"] = filepath.Join(root, "missing.yaml")
	if _, err := LoadLayers(root, "", func(key string) string { return env[key] }); err == nil {
		t.Fatal("expected error for missing TODOLINT_CONFIG")
	}
}

func TestNormalizeUI(t *testing.T) {
	values := UISettings{Output: " MD ", Color: "On", Fields: " file,line ", Sort: " -kind "}
	normalized, err := NormalizeUI(values)
	if err != nil {
		t.Fatalf("NormalizeUI error: %v", err)
	}
	if normalized.Output != "markdown" {
		t.Fatalf("expected output markdown, got %q", normalized.Output)
	}
	if normalized.Color != "always" {
		t.Fatalf("expected color always, got %q", normalized.Color)
	}
	if normalized.Sort != "-kind" || normalized.Fields != "file,line" {
		t.Fatalf("expected trimmed values, got %+v", normalized)
	}

	if _, err := NormalizeUI(UISettings{Output: "xml"}); err == nil {
		t.Fatal("expected error for invalid output")
	}
	if _, err := NormalizeUI(UISettings{Color: "rainbow"}); err == nil {
		t.Fatal("expected error for invalid color")
	}
	if _, err := NormalizeUI(UISettings{Truncate: -1}); err == nil {
		t.Fatal("expected error for negative truncate")
	}
}

func ptrString(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}

func ptrInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
