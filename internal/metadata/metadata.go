// Package metadata implements spec.md C3 (structured/meta-tag metadata
// resolution) and the article title heuristic of §4.2.
package metadata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/text"
)

// Metadata is the resolved metadata bag of spec.md §3.
type Metadata struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	PublishedTime string
}

// findAll enumerates every descendant matching one of tags, in document
// order, via a goquery selection over root rather than a hand-rolled
// recursive walk — the metadata pass is pure enumeration, never mutation,
// which is exactly the read-only shape goquery.Selection is for.
func findAll(root *html.Node, tags ...string) []*html.Node {
	selectors := make([]string, len(tags))
	for i, t := range tags {
		selectors[i] = strings.ToLower(t)
	}
	var out []*html.Node
	goquery.NewDocumentFromNode(root).Find(strings.Join(selectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Nodes[0])
	})
	return out
}

func documentTitle(root *html.Node) string {
	titles := findAll(root, "TITLE")
	if len(titles) == 0 {
		return ""
	}
	return dom.TextContent(titles[0])
}

// Extract implements spec.md §4.1: the JSON-LD pass followed by the
// meta-tag pass, merged by priority, with the §4.2 title heuristic
// resolving the title JSON-LD and meta tags both leave empty.
// disableJSONLD skips the JSON-LD pass entirely, per the orchestrator's
// disableJSONLD option — when set, that slot in the title priority list
// is simply empty, not replaced by a different source.
func Extract(root *html.Node, disableJSONLD bool) Metadata {
	heuristicTitle := ResolveTitle(root, documentTitle(root))

	var ld jsonLDResult
	if !disableJSONLD {
		ld = extractJSONLD(root, heuristicTitle)
	}
	metaTags := scanMetaTags(root)

	m := Metadata{
		Title:         firstNonEmpty(ld.Title, metaTags["dc:title"], metaTags["dcterm:title"], metaTags["og:title"], metaTags["weibo:article:title"], metaTags["weibo:webpage:title"], metaTags["title"], metaTags["twitter:title"], metaTags["parsely-title"]),
		Byline:        resolveByline(ld.Byline, metaTags),
		Excerpt:       firstNonEmpty(ld.Excerpt, metaTags["dc:description"], metaTags["dcterm:description"], metaTags["og:description"], metaTags["weibo:article:description"], metaTags["weibo:webpage:description"], metaTags["description"], metaTags["twitter:description"]),
		SiteName:      firstNonEmpty(ld.SiteName, metaTags["og:site_name"]),
		PublishedTime: firstNonEmpty(ld.DatePublished, metaTags["article:published_time"], metaTags["parsely-pub-date"]),
	}

	if m.Title == "" {
		m.Title = heuristicTitle
	}

	m.Title = text.Unescape(m.Title)
	m.Byline = text.Unescape(m.Byline)
	m.Excerpt = text.Unescape(m.Excerpt)
	m.SiteName = text.Unescape(m.SiteName)
	if m.PublishedTime != "" {
		m.PublishedTime = normalizeDate(text.Unescape(m.PublishedTime))
	}

	return m
}

func resolveByline(jsonLDByline string, metaTags map[string]string) string {
	if jsonLDByline != "" {
		return jsonLDByline
	}
	if v := firstNonEmpty(metaTags["dc:creator"], metaTags["dcterm:creator"], metaTags["author"], metaTags["parsely-author"]); v != "" {
		return v
	}
	if v := metaTags["article:author"]; v != "" && !text.LooksLikeURL(v) {
		return v
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
