// Package text provides the normalized inner-text extraction, whitespace
// and comma detection, word counting and text similarity primitives that
// every other extraction stage shares (spec.md C2).
package text

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/net/html"
)

// whitespaceRun collapses runs of Unicode whitespace to a single space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize trims and collapses internal whitespace, the "normalized
// inner-text" the scoring engine and retry controller measure.
func Normalize(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// commaVariants lists every code point spec.md §4.5 counts as a comma:
// ASCII comma, Arabic comma, small forms, vertical forms, and the CJK
// ideographic comma variants.
var commaVariants = []rune{
	',',      // U+002C
	'،', // Arabic comma
	'﹐', // small comma
	'︐', // presentation form vertical comma
	'︑', // presentation form vertical ideographic comma
	'⹁', // reversed comma
	'⸴', // raised comma
	'⸲', // turned comma
	'，', // fullwidth comma
}

// CountCommas counts every comma-like code point in s, across the full
// Unicode code-point space (not just the BMP) per spec.md §9.
func CountCommas(s string) int {
	count := 0
	for _, r := range s {
		for _, c := range commaVariants {
			if r == c {
				count++
				break
			}
		}
	}
	return count
}

// IsWhitespace reports whether s consists entirely of Unicode whitespace
// (including the empty string).
func IsWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// WordCount returns the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Unescape decodes HTML entities in s, e.g. "&amp;" -> "&". Metadata
// string fields are unescaped exactly once per spec.md §3's invariant.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// Similarity returns a normalized Levenshtein similarity in [0, 1]: 1 for
// identical strings, 0 for maximally different strings of the compared
// lengths. Used by the JSON-LD title-choice heuristic (spec.md §4.1),
// which compares against a threshold of 0.75.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	maxLen := len([]rune(a))
	if bl := len([]rune(b)); bl > maxLen {
		maxLen = bl
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// looksLikeURLRe is a conservative check used to reject article:author
// meta values that are actually profile URLs (spec.md §4.1 byline rule,
// §8 property 9).
var looksLikeURLRe = regexp.MustCompile(`(?i)^(https?:)?//|^www\.`)

// LooksLikeURL reports whether s resembles a URL rather than a person's
// name.
func LooksLikeURL(s string) bool {
	return looksLikeURLRe.MatchString(strings.TrimSpace(s))
}
