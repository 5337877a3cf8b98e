// Package slug derives URL-safe identifiers from content titles.
package slug

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fallback is returned when a title slugifies to nothing.
const Fallback = "untitled"

// Matches runs of characters that are not a letter (any script, CJK
// included), digit, or underscore.
var nonSlugRunes = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Make converts a title to a URL-safe slug.
// "Hello World" -> "hello-world".
// "Go 语言入门" -> "go-语言入门".
// "!!!" -> "untitled".
//
// Make is idempotent: applying it to its own output returns the same slug.
// Uniqueness is the caller's concern; the store appends -1, -2, … on
// collision.
func Make(title string) string {
	// Normalize unicode so composed and decomposed forms slugify alike.
	s := norm.NFKC.String(title)

	s = strings.ToLower(strings.TrimSpace(s))

	// Replace each run of disallowed characters with a single hyphen.
	s = nonSlugRunes.ReplaceAllString(s, "-")

	// Trim leading/trailing hyphens.
	s = strings.Trim(s, "-")

	if s == "" {
		return Fallback
	}
	return s
}

// WithSuffix returns the candidate slug for the nth collision retry.
// n starts at 1: "hello-world" -> "hello-world-1".
func WithSuffix(base string, n int) string {
	if n <= 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
