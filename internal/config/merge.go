package config

import "strings"

func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Type = Resolve(out.Type, layer.Type)
		out.Root = ResolveAndTrim(out.Root, layer.Root)
		out.Paths = ResolveStrings(out.Paths, layer.Paths)
		out.Excludes = ResolveStrings(out.Excludes, layer.Excludes)
		out.PathRegex = ResolveStrings(out.PathRegex, layer.PathRegex)
		out.ExcludeTypical = Resolve(out.ExcludeTypical, layer.ExcludeTypical)
		out.Langs = ResolveStrings(out.Langs, layer.Langs)
		out.MaxFileBytes = Resolve(out.MaxFileBytes, layer.MaxFileBytes)
		out.Jobs = Resolve(out.Jobs, layer.Jobs)
		out.NoGit = Resolve(out.NoGit, layer.NoGit)
		out.Cache = Resolve(out.Cache, layer.Cache)
		out.CacheDir = ResolveAndTrim(out.CacheDir, layer.CacheDir)
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Fields = ResolveAndTrim(out.Fields, layer.Fields)
		out.Sort = ResolveAndTrim(out.Sort, layer.Sort)
		out.Truncate = Resolve(out.Truncate, layer.Truncate)
		out.ExitCode = Resolve(out.ExitCode, layer.ExitCode)
	}
	if strings.TrimSpace(out.Output) == "" {
		out.Output = "pretty"
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
