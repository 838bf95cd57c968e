package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestBuildPathspecs_DefaultsToDot(t *testing.T) {
	t.Parallel()

	got := buildPathspecs(nil, nil, false)
	want := []string{"."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected result: %#v", got)
	}
}

func TestBuildPathspecsIncludesAndExcludes(t *testing.T) {
	t.Parallel()

	includes := []string{"src", " pkg ", ""}
	excludes := []string{"vendor/**", ":(exclude)third_party/**", ":!build/**"}

	got := buildPathspecs(includes, excludes, true)

	want := []string{"src", "pkg"}
	want = append(want, typicalExcludePatterns...)
	want = append(want, ":(glob,exclude)vendor/**", ":(exclude)third_party/**", ":!build/**")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pathspecs mismatch:\n got=%v\nwant=%v", got, want)
	}
}

func TestCompilePathRegexTrimsAndValidates(t *testing.T) {
	t.Parallel()

	rx, err := CompilePathRegex([]string{"  ", "^src/", "(cmd|pkg)"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rx) != 2 {
		t.Fatalf("expected 2 regexps, got %d", len(rx))
	}

	if _, err := CompilePathRegex([]string{"["}); err == nil {
		t.Fatal("expected compile error for invalid regexp")
	}
}

func TestFilterPathsByRegex(t *testing.T) {
	t.Parallel()

	paths := []string{"src/main.go", "pkg/util.go", "docs/readme.md"}
	rx := []*regexp.Regexp{regexp.MustCompile(`^src/`), regexp.MustCompile(`\.go$`)}

	got := filterPathsByRegex(paths, rx)
	want := []string{"src/main.go", "pkg/util.go"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
	if all := filterPathsByRegex(paths, nil); len(all) != len(paths) {
		t.Fatalf("expected original slice when no regex: %d vs %d", len(all), len(paths))
	}
}

func TestExcludedGlobs(t *testing.T) {
	t.Parallel()

	globs := walkExcludes([]string{":(glob,exclude)gen/*.rs", "docs/**"}, true)
	cases := map[string]bool{
		"vendor/":          true,
		"vendor/a/b.go":    true,
		"src/app.min.js":   true,
		"gen/x.rs":         true,
		"gen/sub/x.rs":     false,
		"docs/":            true,
		"src/main.rs":      false,
		"vendored/main.rs": false,
	}
	for rel, want := range cases {
		if got := excluded(rel, globs); got != want {
			t.Fatalf("excluded(%q)=%v want %v (globs=%v)", rel, got, want, globs)
		}
	}
}

type fakeRunner struct {
	calls [][]string
	out   map[string][]byte
	err   map[string]error
}

func (f *fakeRunner) Run(_ context.Context, _ string, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	key := args[0]
	if key == "-c" {
		key = args[2]
	}
	return f.out[key], nil, f.err[key]
}

func TestGitListFilesParsesNulSeparatedOutput(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{out: map[string][]byte{
		"rev-parse": []byte("true\n"),
		"ls-files":  []byte("b.rs\x00a.go\x00b.rs\x00"),
	}}
	got, err := gitListFiles(context.Background(), r, "/repo", []string{"src"}, nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b.rs", "a.go"}) {
		t.Fatalf("unexpected files: %v", got)
	}
	last := r.calls[len(r.calls)-1]
	if strings.Join(last[len(last)-2:], " ") != "-- src" {
		t.Fatalf("pathspecs must follow --: %v", last)
	}
}

func TestGitListFilesOutsideRepo(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{err: map[string]error{"rev-parse": errors.New("exit status 128")}}
	_, err := gitListFiles(context.Background(), r, "/tmp", nil, nil, false)
	if !errors.Is(err, errNotGitRepo) {
		t.Fatalf("expected errNotGitRepo, got %v", err)
	}
}

func TestWalkFilesSkipsExcludedTrees(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, p := range []string{"src/main.rs", "vendor/dep/lib.rs", ".git/HEAD", "web/app.min.js"} {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := walkFiles(context.Background(), root, nil, walkExcludes(nil, true))
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"src/main.rs"}) {
		t.Fatalf("unexpected files: %v", got)
	}
}

func TestGitListFilesReportsStderr(t *testing.T) {
	t.Parallel()

	r := &stderrRunner{}
	_, err := gitListFiles(context.Background(), r, "/repo", nil, nil, false)
	if err == nil || !strings.Contains(err.Error(), "list files: git ls-files: exit status 128: fatal: bad pathspec") {
		t.Fatalf("unexpected error: %v", err)
	}
	if errors.Is(err, errNotGitRepo) {
		t.Fatal("ls-files failures must not fall back to walking")
	}
}

type stderrRunner struct{}

func (stderrRunner) Run(_ context.Context, _ string, _ string, args ...string) ([]byte, []byte, error) {
	if args[0] == "rev-parse" {
		return []byte("true\n"), nil, nil
	}
	return nil, []byte("fatal: bad pathspec\n"), errors.New("exit status 128")
}
