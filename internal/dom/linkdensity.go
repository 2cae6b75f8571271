package dom

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/text"
)

// InnerText returns n's normalized (trimmed, whitespace-collapsed) text
// content.
func InnerText(n *html.Node) string {
	return text.Normalize(TextContent(n))
}

// hashHref matches an in-page anchor target ("#section"), which spec.md
// §4.5 discounts to 0.3 weight in the link-density sum: such links point
// within the same document and are far less likely to be navigation away
// from the article.
var hashHref = regexp.MustCompile(`^#.+`)

// LinkDensity computes the weighted ratio of anchor-enclosed text to the
// element's total text, per spec.md §4.5. Always in [0, 1]; 0 when the
// element has no text at all.
func LinkDensity(n *html.Node) float64 {
	totalLen := len([]rune(InnerText(n)))
	if totalLen == 0 {
		return 0
	}

	var linkLen float64
	forEachDescendant(n, func(d *html.Node) {
		if TagName(d) != "A" {
			return
		}
		aLen := float64(len([]rune(InnerText(d))))
		href := Attr(d, "href")
		if hashHref.MatchString(href) {
			aLen *= 0.3
		}
		linkLen += aLen
	})

	density := linkLen / float64(totalLen)
	if density < 0 {
		return 0
	}
	if density > 1 {
		return 1
	}
	return density
}

func forEachDescendant(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			fn(c)
			forEachDescendant(c, fn)
		}
	}
}

// ClassIDMatches reports whether the element's combined class+id text
// matches re. Many heuristics (unlikely-candidate filtering, byline
// detection, class weighting) all test this same combined string.
func ClassIDMatches(n *html.Node, re *regexp.Regexp) bool {
	return re.MatchString(strings.Join([]string{ClassName(n), ID(n)}, " "))
}
