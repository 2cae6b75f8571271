// Package prepare implements spec.md C9: the thirteen-step article
// preparator that runs over the assembled content container before
// post-processing.
package prepare

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/preprocess"
	"github.com/clarity-reader/readability/internal/scoring"
)

// DefaultAllowedVideoRegex is the allow-listed video-embed pattern of
// spec.md §4.9, used unless Config.AllowedVideoRegex overrides it.
var DefaultAllowedVideoRegex = regexp.MustCompile(`(?i)//(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)/`)

var shareClassRe = regexp.MustCompile(`(?i)(\b|_)(share|sharedaddy)(\b|_)`)
var dataRoleRe = regexp.MustCompile(`(?i)^(grid|list|treegrid)$`)
var imageExtURLRe = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|svg)(\?\S*)?$`)
var base64ImageRe = regexp.MustCompile(`(?i)^data:image\/`)

var styleAttrs = map[string]bool{
	"align": true, "background": true, "bgcolor": true, "border": true,
	"cellpadding": true, "cellspacing": true, "frame": true, "hspace": true,
	"rules": true, "style": true, "valign": true, "vspace": true,
}
var sizedTags = map[string]bool{"TABLE": true, "TH": true, "TD": true, "HR": true, "PRE": true}

// Config carries the Options the caller set on Parse that affect article
// preparation: the allow-listed video-embed pattern and an additive
// adjustment to the link-density thresholds conditional cleaning applies.
type Config struct {
	AllowedVideoRegex   *regexp.Regexp
	LinkDensityModifier float64
}

func (c Config) videoRegex() *regexp.Regexp {
	if c.AllowedVideoRegex != nil {
		return c.AllowedVideoRegex
	}
	return DefaultAllowedVideoRegex
}

// Prepare runs the full C9 sequence over articleContent in place.
// cleanConditionallyActive gates the cleanConditionally passes (steps 4
// and 9): the retry controller (C11) clears it on its last relaxation
// attempt.
func Prepare(store *dom.Store, articleContent *html.Node, cleanConditionallyActive bool, cfg Config) {
	cleanStyles(articleContent)
	markDataTables(articleContent)
	fixLazyImages(articleContent)

	if cleanConditionallyActive {
		cleanConditionally(store, articleContent, "FORM", cfg)
		cleanConditionally(store, articleContent, "FIELDSET", cfg)
	}

	cleanAbsolute(articleContent, cfg, "OBJECT", "EMBED", "FOOTER", "LINK", "ASIDE")
	removeShareElements(articleContent)
	cleanAbsolute(articleContent, cfg, "IFRAME", "INPUT", "TEXTAREA", "SELECT", "BUTTON")

	cleanHeaders(store, articleContent)

	if cleanConditionallyActive {
		cleanConditionally(store, articleContent, "TABLE", cfg)
		cleanConditionally(store, articleContent, "UL", cfg)
		cleanConditionally(store, articleContent, "DIV", cfg)
		cleanConditionally(store, articleContent, "OL", cfg)
		cleanConditionally(store, articleContent, "DL", cfg)
	}

	replaceH1WithH2(articleContent)
	removeEmptyParagraphs(articleContent)
	removeStrayBrBeforeP(articleContent)
	flattenSingleCellTables(articleContent)
}

func findAll(root *html.Node, tags ...string) []*html.Node {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for _, c := range dom.Children(n) {
			if set[dom.TagName(c)] {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func isInsideTag(n *html.Node, tag string) bool {
	for p := dom.Parent(n); p != nil; p = dom.Parent(p) {
		if dom.TagName(p) == tag {
			return true
		}
	}
	return false
}

// cleanStyles strips presentational attributes recursively, skipping
// inside <svg> subtrees.
func cleanStyles(n *html.Node) {
	if dom.TagName(n) == "SVG" {
		return
	}
	if dom.IsElement(n) {
		tag := dom.TagName(n)
		for attr := range styleAttrs {
			dom.RemoveAttr(n, attr)
		}
		if sizedTags[tag] {
			dom.RemoveAttr(n, "width")
			dom.RemoveAttr(n, "height")
		}
	}
	for _, c := range dom.Children(n) {
		cleanStyles(c)
	}
}

// markDataTables tags every <table> that looks like real tabular data
// (rather than a layout hack) with a data-readability-table attribute, so
// cleanConditionally and the single-cell flattener can protect it.
func markDataTables(root *html.Node) {
	for _, table := range findAll(root, "TABLE") {
		if isDataTable(table) {
			dom.SetAttr(table, "data-readability-table", "true")
		}
	}
}

func isDataTable(table *html.Node) bool {
	if role := dom.Attr(table, "role"); dataRoleRe.MatchString(role) {
		return true
	}
	if dom.Attr(table, "summary") != "" {
		return true
	}
	if len(findAll(table, "CAPTION")) > 0 || len(findAll(table, "THEAD")) > 0 ||
		len(findAll(table, "TFOOT")) > 0 || len(findAll(table, "COLGROUP")) > 0 ||
		len(findAll(table, "TH")) > 0 {
		return true
	}

	cells := findAll(table, "TD")
	rows := findAll(table, "TR")
	if len(cells) >= 10 && len(rows) >= 4 {
		return true
	}
	for _, c := range cells {
		if spanInt(dom.Attr(c, "colspan")) > 1 || spanInt(dom.Attr(c, "rowspan")) > 1 {
			return true
		}
	}
	return false
}

func spanInt(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func isDataTableNode(n *html.Node) bool {
	return dom.TagName(n) == "TABLE" && dom.HasAttr(n, "data-readability-table")
}

// fixLazyImages copies lazily-loaded image data into src/srcset when the
// real attributes are absent.
func fixLazyImages(root *html.Node) {
	for _, img := range findAll(root, "IMG", "PICTURE") {
		hasSrc := dom.Attr(img, "src") != ""
		hasSrcset := dom.Attr(img, "srcset") != ""
		if hasSrc && hasSrcset {
			continue
		}
		if ds := dom.Attr(img, "data-src"); ds != "" && looksLikeImageURL(ds) && !hasSrc {
			dom.SetAttr(img, "src", ds)
			hasSrc = true
		}
		if dss := dom.Attr(img, "data-srcset"); dss != "" && !hasSrcset {
			dom.SetAttr(img, "srcset", dss)
			hasSrcset = true
		}
		if hasSrc || hasSrcset {
			continue
		}
		for _, a := range img.Attr {
			if looksLikeImageURL(a.Val) {
				dom.SetAttr(img, "src", a.Val)
				break
			}
		}
	}
}

func looksLikeImageURL(v string) bool {
	return imageExtURLRe.MatchString(v) || base64ImageRe.MatchString(v)
}

// cleanAbsolute removes every element matching one of tags outright,
// except <object>/<embed>/<iframe> that reference an allow-listed video
// embed.
func cleanAbsolute(root *html.Node, cfg Config, tags ...string) {
	for _, n := range findAll(root, tags...) {
		if isAllowedVideoEmbed(n, cfg.videoRegex()) {
			continue
		}
		dom.Remove(n)
	}
}

func isAllowedVideoEmbed(n *html.Node, videoRe *regexp.Regexp) bool {
	tag := dom.TagName(n)
	if tag != "OBJECT" && tag != "EMBED" && tag != "IFRAME" {
		return false
	}
	for _, a := range n.Attr {
		if videoRe.MatchString(a.Val) {
			return true
		}
	}
	return videoRe.MatchString(dom.TextContent(n))
}

// removeShareElements drops share-button descendants of every top-level
// child of articleContent.
func removeShareElements(articleContent *html.Node) {
	for _, top := range dom.Children(articleContent) {
		for _, n := range findAll(top, allElementTags(top)...) {
			matchString := dom.ClassName(n) + " " + dom.ID(n)
			if shareClassRe.MatchString(matchString) && len([]rune(dom.InnerText(n))) < 500 {
				dom.Remove(n)
			}
		}
	}
}

// allElementTags returns every distinct tag name present under n, used to
// drive findAll's tag-set filter over an arbitrary subtree.
func allElementTags(n *html.Node) []string {
	set := map[string]bool{}
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		for _, c := range dom.Children(m) {
			set[dom.TagName(c)] = true
			walk(c)
		}
	}
	walk(n)
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}

// cleanHeaders removes <h1>/<h2> elements with negative class weight.
func cleanHeaders(store *dom.Store, root *html.Node) {
	for _, h := range findAll(root, "H1", "H2") {
		if scoring.GetWeight(h) < 0 {
			dom.Remove(h)
		}
	}
}

func replaceH1WithH2(root *html.Node) {
	for _, h := range findAll(root, "H1") {
		dom.Retag(h, "h2")
	}
}

func removeEmptyParagraphs(root *html.Node) {
	for _, p := range findAll(root, "P") {
		if len(findAll(p, "IMG", "EMBED", "OBJECT", "IFRAME")) > 0 {
			continue
		}
		if strings.TrimSpace(dom.TextContent(p)) != "" {
			continue
		}
		dom.Remove(p)
	}
}

func removeStrayBrBeforeP(root *html.Node) {
	for _, br := range findAll(root, "BR") {
		next := br.NextSibling
		for next != nil && dom.IsText(next) && strings.TrimSpace(next.Data) == "" {
			next = next.NextSibling
		}
		if next != nil && dom.TagName(next) == "P" {
			dom.Remove(br)
		}
	}
}

func flattenSingleCellTables(root *html.Node) {
	for _, table := range findAll(root, "TABLE") {
		tbodies := findAll(table, "TBODY")
		if len(tbodies) != 1 {
			continue
		}
		rows := dom.Children(tbodies[0])
		if len(rows) != 1 || dom.TagName(rows[0]) != "TR" {
			continue
		}
		cells := dom.Children(rows[0])
		if len(cells) != 1 || dom.TagName(cells[0]) != "TD" {
			continue
		}
		td := cells[0]
		allPhrasing := true
		for _, c := range dom.ChildNodes(td) {
			if !preprocess.IsPhrasingContent(c) {
				allPhrasing = false
				break
			}
		}
		if allPhrasing {
			dom.Retag(td, "p")
		} else {
			dom.Retag(td, "div")
		}
		dom.ReplaceNode(table, td)
	}
}
