package prepare

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/scoring"
	"github.com/clarity-reader/readability/internal/text"
)

var embedTags = map[string]bool{"OBJECT": true, "EMBED": true, "IFRAME": true}

// cleanConditionally implements spec.md §4.9's cleanConditionally(tag):
// every descendant matching tag survives unless its weight+score is
// negative, or its comma count is low and the composite density
// heuristic trips. Data tables and anything under <code> are protected.
func cleanConditionally(store *dom.Store, root *html.Node, tag string, cfg Config) {
	for _, n := range findAll(root, tag) {
		if isDataTableNode(n) {
			continue
		}
		if isInsideTag(n, "CODE") {
			continue
		}

		weight := float64(scoring.GetWeight(n))
		if weight+store.Score(n) < 0 {
			dom.Remove(n)
			continue
		}

		innerText := dom.InnerText(n)
		if text.CountCommas(innerText) >= 10 {
			continue
		}

		if failsDensityHeuristic(n, tag, weight, innerText, cfg) {
			dom.Remove(n)
		}
	}
}

func failsDensityHeuristic(n *html.Node, tag string, weight float64, innerText string, cfg Config) bool {
	p := len(findAll(n, "P"))
	img := len(findAll(n, "IMG"))
	li := len(findAll(n, "LI"))
	input := len(findAll(n, "INPUT"))
	contentLength := len([]rune(innerText))
	linkDensity := dom.LinkDensity(n)

	insideFigure := isInsideTag(n, "FIGURE")
	insideList := isInsideTag(n, "UL") || isInsideTag(n, "OL")

	if img > p && !insideFigure {
		trivial := img <= 1
		if !(trivial && insideList) {
			return true
		}
	}

	if li > p && tag != "UL" && tag != "OL" {
		return true
	}

	if input > p/3 {
		return true
	}

	if contentLength < 25 && (img == 0 || img > 2) && !insideFigure {
		return true
	}

	if weight < 25 && linkDensity > 0.2+cfg.LinkDensityModifier {
		return true
	}
	if weight >= 25 && linkDensity > 0.5+cfg.LinkDensityModifier {
		return true
	}

	if embeds := countUnexemptedEmbeds(n, cfg.videoRegex()); embeds > 0 {
		if (embeds == 1 && contentLength < 75) || embeds > 1 {
			return true
		}
	}

	return false
}

// countUnexemptedEmbeds counts OBJECT/EMBED/IFRAME descendants that do
// not reference an allow-listed video provider.
func countUnexemptedEmbeds(n *html.Node, videoRe *regexp.Regexp) int {
	count := 0
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		for _, c := range dom.Children(m) {
			if embedTags[dom.TagName(c)] && !isAllowedVideoEmbed(c, videoRe) {
				count++
			}
			walk(c)
		}
	}
	walk(n)
	return count
}
