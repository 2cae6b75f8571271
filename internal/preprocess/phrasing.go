package preprocess

import (
	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

// phrasingTags is the set from spec.md §4.3: inline-level HTML content
// that flows within a paragraph.
var phrasingTags = map[string]bool{
	"ABBR": true, "AUDIO": true, "B": true, "BDO": true, "BR": true,
	"BUTTON": true, "CITE": true, "CODE": true, "DATA": true,
	"DATALIST": true, "DFN": true, "EM": true, "EMBED": true, "I": true,
	"IMG": true, "INPUT": true, "KBD": true, "LABEL": true, "MARK": true,
	"MATH": true, "METER": true, "NOSCRIPT": true, "OBJECT": true,
	"OUTPUT": true, "PROGRESS": true, "Q": true, "RUBY": true,
	"SAMP": true, "SCRIPT": true, "SELECT": true, "SMALL": true,
	"SPAN": true, "STRONG": true, "SUB": true, "SUP": true,
	"TEXTAREA": true, "TIME": true, "VAR": true, "WBR": true,
}

// wrapperTags are the three elements that are phrasing content iff every
// one of their children is phrasing content (spec.md §4.3).
var wrapperTags = map[string]bool{"A": true, "DEL": true, "INS": true}

// IsPhrasingContent reports whether n is phrasing content: a text node,
// a leaf phrasing element, or an A/DEL/INS whose children are all
// (recursively) phrasing content.
func IsPhrasingContent(n *html.Node) bool {
	if dom.IsText(n) {
		return true
	}
	if !dom.IsElement(n) {
		return false
	}
	tag := dom.TagName(n)
	if phrasingTags[tag] {
		return true
	}
	if wrapperTags[tag] {
		for _, c := range dom.ChildNodes(n) {
			if !IsPhrasingContent(c) {
				return false
			}
		}
		return true
	}
	return false
}
