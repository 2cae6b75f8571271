package scoring

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

var displayNoneRe = regexp.MustCompile(`(?i)display\s*:\s*none`)
var visibilityHiddenRe = regexp.MustCompile(`(?i)visibility\s*:\s*hidden`)

// IsProbablyVisible implements spec.md §4.4 step 1's visibility test.
func IsProbablyVisible(n *html.Node) bool {
	style := dom.Attr(n, "style")
	if displayNoneRe.MatchString(style) {
		return false
	}
	if visibilityHiddenRe.MatchString(style) {
		return false
	}
	if dom.HasAttr(n, "hidden") {
		return false
	}
	if strings.EqualFold(dom.Attr(n, "aria-hidden"), "true") {
		if strings.Contains(dom.ClassName(n), "fallback-image") {
			return true
		}
		return false
	}
	return true
}

// hasAncestorTag reports whether any ancestor of n carries one of tags.
func hasAncestorTag(n *html.Node, tags map[string]bool) bool {
	for p := dom.Parent(n); p != nil; p = dom.Parent(p) {
		if tags[dom.TagName(p)] {
			return true
		}
	}
	return false
}

var tableOrCode = map[string]bool{"TABLE": true, "CODE": true}
