// Package preprocess is the document pre-processor (spec.md C4): it
// unwraps noscript lazy-image fallbacks, strips scripts/styles, folds
// <br> runs into paragraphs, and widens obsolete <font> tags into <span>.
// Order matters and is fixed by spec.md §4.3 — Run executes every step in
// the required sequence.
package preprocess

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

var scriptAndNoscript = map[string]bool{"SCRIPT": true, "NOSCRIPT": true}
var styleTag = map[string]bool{"STYLE": true}
var brTag = map[string]bool{"BR": true}

// Run applies the full C4 pipeline to root (typically <html> or <body>).
func Run(root *html.Node) {
	UnwrapNoscriptImages(root)
	StripScriptsAndNoscript(root)
	StripStyles(root)
	ReplaceBrRuns(root)
	WidenFontTags(root)
}

// StripScriptsAndNoscript removes every <script> and <noscript> element.
// Must run after UnwrapNoscriptImages, which still needs the <noscript>
// elements present to inspect (spec.md §9 open question).
func StripScriptsAndNoscript(root *html.Node) {
	for _, n := range findAll(root, scriptAndNoscript) {
		dom.Remove(n)
	}
}

// StripStyles removes every <style> element document-wide.
func StripStyles(root *html.Node) {
	for _, n := range findAll(root, styleTag) {
		dom.Remove(n)
	}
}

// WidenFontTags retags every <font> to <span>, preserving attributes and
// children in place (spec.md §4.3 step 5, §8 property 2).
func WidenFontTags(root *html.Node) {
	for _, n := range findAll(root, map[string]bool{"FONT": true}) {
		dom.Retag(n, "span")
	}
}

// UnwrapNoscriptImages implements spec.md §4.3 step 1: for each <noscript>
// whose content is a single image-bearing fragment, if the preceding
// sibling is an <img> placeholder lacking meaningful src/srcset/data-*,
// replace the placeholder with the higher-quality image found inside the
// <noscript> and drop the <noscript>.
//
// golang.org/x/net/html parses <noscript> assuming scripting is enabled
// (the real-browser default), so its content arrives as a single raw-text
// child rather than element children; we re-parse that text as an HTML
// fragment to look inside it.
func UnwrapNoscriptImages(root *html.Node) {
	for _, ns := range findAll(root, map[string]bool{"NOSCRIPT": true}) {
		inner := dom.TextContent(ns)
		if strings.TrimSpace(inner) == "" {
			continue
		}
		frag, err := parseFragment(inner)
		if err != nil || len(frag) == 0 {
			continue
		}

		img := singleImageBearingElement(frag)
		if img == nil {
			continue
		}

		prev := dom.PrevElementSibling(ns)
		if prev == nil || dom.TagName(prev) != "IMG" || hasMeaningfulImageAttrs(prev) {
			continue
		}

		dom.ReplaceNode(prev, img)
		dom.Remove(ns)
	}
}

// parseFragment parses s as an HTML fragment in a generic <div> context.
func parseFragment(s string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "div"}
	return html.ParseFragment(strings.NewReader(s), context)
}

// singleImageBearingElement returns the lone top-level element of frag if
// it, or something within it, is an <img> or <picture>; nil otherwise.
func singleImageBearingElement(frag []*html.Node) *html.Node {
	var elems []*html.Node
	for _, n := range frag {
		if dom.IsElement(n) {
			elems = append(elems, n)
		} else if !dom.IsText(n) || strings.TrimSpace(n.Data) != "" {
			// Non-whitespace, non-element content: not a clean image fragment.
			return nil
		}
	}
	if len(elems) != 1 {
		return nil
	}
	root := elems[0]
	tag := dom.TagName(root)
	if tag == "IMG" || tag == "PICTURE" {
		return root
	}
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		for _, c := range dom.Children(n) {
			if t := dom.TagName(c); t == "IMG" || t == "PICTURE" {
				found = root
				return
			}
			walk(c)
		}
	}
	walk(root)
	return found
}

// hasMeaningfulImageAttrs reports whether img already carries a usable
// src/srcset/data-* image reference, meaning it is not a bare placeholder
// waiting on its <noscript> fallback.
func hasMeaningfulImageAttrs(img *html.Node) bool {
	if strings.TrimSpace(dom.Attr(img, "src")) != "" {
		return true
	}
	if strings.TrimSpace(dom.Attr(img, "srcset")) != "" {
		return true
	}
	for _, a := range img.Attr {
		if strings.HasPrefix(a.Key, "data-") && strings.TrimSpace(a.Val) != "" {
			return true
		}
	}
	return false
}
