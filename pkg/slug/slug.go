// Package slug derives URL-safe identifiers from post titles.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Make converts a title into its slug form: lowercase, non-word characters
// stripped, whitespace runs collapsed to a single hyphen, repeated hyphens
// collapsed, leading/trailing hyphens trimmed.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithSuffix returns the n-th collision candidate for a base slug.
// n == 0 returns the base unchanged; n >= 1 appends "-n".
func WithSuffix(base string, n int) string {
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
