// Package assemble implements spec.md C8: building the article-content
// container by walking the top candidate's siblings and deciding, one by
// one, which belong in the extracted article.
package assemble

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

var containerTags = map[string]bool{
	"DIV": true, "ARTICLE": true, "SECTION": true, "P": true, "OL": true, "UL": true,
}

var trailingSentenceRe = regexp.MustCompile(`\.( |$)`)

// Assemble implements spec.md §4.8. top is the refined top candidate from
// C7; store holds every element's content score. paging, when true, tags
// the output container with id="readability-content" for multi-page
// merges.
func Assemble(store *dom.Store, top *html.Node, paging bool) *html.Node {
	container := dom.CreateElement("div")
	if paging {
		dom.SetAttr(container, "id", "readability-content")
	}

	parent := dom.Parent(top)
	if parent == nil {
		dom.AppendChild(container, top)
		return container
	}

	topScore := store.Score(top)
	threshold := topScore * 0.2
	if threshold < 10 {
		threshold = 10
	}
	topClass := dom.ClassName(top)

	for _, sibling := range dom.Children(parent) {
		if sibling == top {
			appendSibling(container, sibling)
			continue
		}

		if shouldAppend(store, sibling, topClass, topScore, threshold) {
			appendSibling(container, sibling)
		}
	}

	return container
}

func shouldAppend(store *dom.Store, sibling *html.Node, topClass string, topScore, threshold float64) bool {
	bonus := 0.0
	if topClass != "" && dom.ClassName(sibling) == topClass {
		bonus = topScore * 0.2
	}
	if store.Score(sibling)+bonus >= threshold {
		return true
	}

	if dom.TagName(sibling) != "P" {
		return false
	}

	text := dom.InnerText(sibling)
	length := len([]rune(text))
	linkDensity := dom.LinkDensity(sibling)

	if length > 80 && linkDensity < 0.25 {
		return true
	}
	if length > 0 && length < 80 && linkDensity == 0 && trailingSentenceRe.MatchString(text) {
		return true
	}
	return false
}

// appendSibling retags sibling to <div> first when its tag isn't one of
// the container-safe tags, then moves it into container.
func appendSibling(container, sibling *html.Node) {
	if !containerTags[dom.TagName(sibling)] {
		dom.Retag(sibling, "div")
	}
	dom.AppendChild(container, sibling)
}
