package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/phyten/todolint/internal/execx"
)

var typicalExcludePatterns = []string{
	":(glob,exclude)vendor/**",
	":(glob,exclude)node_modules/**",
	":(glob,exclude)dist/**",
	":(glob,exclude)build/**",
	":(glob,exclude)target/**",
	":(glob,exclude)*.min.*",
}

var errNotGitRepo = errors.New("not a git work tree")

// buildPathspecs builds the list to append after "--" for `git ls-files`.
func buildPathspecs(includes, excludes []string, typical bool) []string {
	out := make([]string, 0, len(includes)+len(excludes)+len(typicalExcludePatterns)+1)
	for _, raw := range includes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		out = append(out, filepath.ToSlash(trimmed))
	}
	if len(out) == 0 {
		out = append(out, ".")
	}
	if typical {
		out = append(out, typicalExcludePatterns...)
	}
	for _, raw := range excludes {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		trimmed = filepath.ToSlash(trimmed)
		if strings.HasPrefix(trimmed, ":!") || strings.HasPrefix(trimmed, ":(exclude)") || strings.HasPrefix(trimmed, ":(glob,exclude)") {
			out = append(out, trimmed)
			continue
		}
		out = append(out, ":(glob,exclude)"+trimmed)
	}
	return out
}

// listFiles returns root-relative, slash-separated candidate paths in sorted
// order. Git work trees use `git ls-files`; anything else is walked.
func listFiles(ctx context.Context, opts Options) ([]string, error) {
	if !opts.NoGit {
		files, err := gitListFiles(ctx, opts.Runner, opts.Root, opts.Paths, opts.Excludes, opts.ExcludeTypical)
		if err == nil {
			sort.Strings(files)
			return files, nil
		}
		if !errors.Is(err, errNotGitRepo) {
			return nil, err
		}
		opts.Logger.WithField("root", opts.Root).Debug("not a git work tree; walking the directory")
	}
	files, err := walkFiles(ctx, opts.Root, opts.Paths, walkExcludes(opts.Excludes, opts.ExcludeTypical))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func gitListFiles(ctx context.Context, runner execx.Runner, repo string, includes, excludes []string, typical bool) ([]string, error) {
	if runner == nil {
		runner = execx.DefaultRunner(nil)
	}
	out, err := execx.Output(ctx, runner, repo, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(string(out)) != "true" {
		return nil, errNotGitRepo
	}
	args := []string{"-c", "core.quotePath=false", "ls-files", "-z", "--cached", "--others", "--exclude-standard", "--"}
	args = append(args, buildPathspecs(includes, excludes, typical)...)
	out, err = execx.Output(ctx, runner, repo, "git", args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	parts := bytes.Split(out, []byte{0})
	paths := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		s := filepath.ToSlash(string(p))
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		paths = append(paths, s)
	}
	return paths, nil
}

// walkExcludes turns pathspec-style excludes into plain globs for walkFiles.
func walkExcludes(excludes []string, typical bool) []string {
	var out []string
	add := func(raw string) {
		trimmed := filepath.ToSlash(strings.TrimSpace(raw))
		for _, prefix := range []string{":(glob,exclude)", ":(exclude)", ":!"} {
			trimmed = strings.TrimPrefix(trimmed, prefix)
		}
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if typical {
		for _, p := range typicalExcludePatterns {
			add(p)
		}
	}
	for _, p := range excludes {
		add(p)
	}
	return out
}

func walkFiles(ctx context.Context, root string, includes, excludes []string) ([]string, error) {
	roots := make([]string, 0, len(includes))
	for _, inc := range includes {
		if trimmed := strings.TrimSpace(inc); trimmed != "" {
			roots = append(roots, filepath.ToSlash(trimmed))
		}
	}
	if len(roots) == 0 {
		roots = append(roots, ".")
	}
	var out []string
	seen := make(map[string]struct{})
	for _, start := range roots {
		err := filepath.WalkDir(filepath.Join(root, filepath.FromSlash(start)), func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			if d.IsDir() {
				if rel != "." && (d.Name() == ".git" || excluded(rel+"/", excludes)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || excluded(rel, excludes) {
				return nil
			}
			if _, dup := seen[rel]; !dup {
				seen[rel] = struct{}{}
				out = append(out, rel)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", start, err)
		}
	}
	return out, nil
}

// excluded reports whether rel matches any glob. Directories are passed with a
// trailing slash so that "vendor/**" prunes the whole tree.
func excluded(rel string, globs []string) bool {
	for _, g := range globs {
		if dir, ok := strings.CutSuffix(g, "/**"); ok {
			if rel == dir+"/" || strings.HasPrefix(rel, dir+"/") {
				return true
			}
			continue
		}
		name := strings.TrimSuffix(rel, "/")
		if ok, _ := path.Match(g, name); ok {
			return true
		}
		if !strings.Contains(g, "/") {
			if ok, _ := path.Match(g, path.Base(name)); ok {
				return true
			}
		}
	}
	return false
}

// CompilePathRegex compiles --path-regex values, skipping blanks.
func CompilePathRegex(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, raw := range patterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		rx, err := regexp.Compile(trimmed)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, rx)
	}
	return compiled, nil
}

func filterPathsByRegex(paths []string, rx []*regexp.Regexp) []string {
	if len(rx) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		for _, r := range rx {
			if r.MatchString(p) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
