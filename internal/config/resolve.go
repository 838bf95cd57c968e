package config

import "strings"

// Resolve は nil でない最後の値を返し、なければ def を返します。
func Resolve[T any](def T, values ...*T) T {
	result := def
	for _, v := range values {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveStrings は Resolve のスライス版で、結果を必ずコピーします。
// 空のリストが指定された層は既定値を空にします。
func ResolveStrings(def []string, values ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range values {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			result = []string{}
			continue
		}
		result = cloneStrings(*v)
	}
	return result
}

func ResolveAndTrim(def string, values ...*string) string {
	return strings.TrimSpace(Resolve(def, values...))
}
