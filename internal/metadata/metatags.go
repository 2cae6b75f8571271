package metadata

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

var metaPropertyRe = regexp.MustCompile(`(?i)^\s*(article|dc|dcterm|og|twitter)\s*:\s*(author|creator|description|published_time|title|site_name)\s*$`)
var metaNameRe = regexp.MustCompile(`(?i)^\s*(?:(dc|dcterm|og|twitter|parsely|weibo:(?:article|webpage))\s*[-.:]\s*)?(author|creator|pub-date|description|title|site_name)\s*$`)
var keyColonSpaceRe = regexp.MustCompile(`\s*:\s*`)
var keyDashSpaceRe = regexp.MustCompile(`\s*-\s*`)

// scanMetaTags implements spec.md §4.1's meta-tag pass: every <meta>
// whose "property" or "name" matches one of the two recognized families
// is normalized (lowercased, whitespace stripped, dots turned to colons)
// and its trimmed content recorded under that key. The first occurrence
// of each key wins.
func scanMetaTags(root *html.Node) map[string]string {
	values := map[string]string{}
	for _, meta := range findAll(root, "META") {
		content := strings.TrimSpace(dom.Attr(meta, "content"))
		if content == "" {
			continue
		}

		if prop := dom.Attr(meta, "property"); prop != "" {
			for _, key := range normalizePropertyKeys(prop) {
				setIfAbsent(values, key, content)
			}
		}
		if name := dom.Attr(meta, "name"); name != "" {
			if key, ok := normalizeNameKey(name); ok {
				setIfAbsent(values, key, content)
			}
		}
	}
	return values
}

func setIfAbsent(m map[string]string, key, val string) {
	if _, ok := m[key]; !ok {
		m[key] = val
	}
}

// normalizePropertyKeys handles the og/twitter-style "property" attribute,
// which may carry multiple space-separated property tokens.
func normalizePropertyKeys(prop string) []string {
	var out []string
	for _, token := range strings.Fields(prop) {
		if metaPropertyRe.MatchString(token) {
			out = append(out, normalizeKey(token))
		}
	}
	return out
}

func normalizeNameKey(name string) (string, bool) {
	if !metaNameRe.MatchString(name) {
		return "", false
	}
	return normalizeKey(name), true
}

func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, ".", ":")
	key = keyColonSpaceRe.ReplaceAllString(key, ":")
	key = keyDashSpaceRe.ReplaceAllString(key, "-")
	return key
}
