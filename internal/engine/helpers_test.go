package engine

import (
	"regexp"
	"testing"
)

func mustRegex(t *testing.T, patterns ...string) []*regexp.Regexp {
	t.Helper()
	rx, err := CompilePathRegex(patterns)
	if err != nil {
		t.Fatalf("compile %v: %v", patterns, err)
	}
	return rx
}
