package metadata

import (
	"encoding/json"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/text"
)

var articleTypeRe = regexp.MustCompile(`(?i)^(Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference)$`)
var schemaContextRe = regexp.MustCompile(`(?i)^https?://schema\.org/?$`)
var cdataRe = regexp.MustCompile(`^\s*(?:/\*[^*]*\*/\s*)?<!\[CDATA\[(.*)\]\]>\s*$`)

type jsonLDResult struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	DatePublished string
}

// extractJSONLD implements spec.md §4.1's JSON-LD pass: enumerate
// <script type="application/ld+json"> elements, parse the first
// article-typed object found, and extract its fields. heuristicTitle is
// the already-resolved document-title heuristic (§4.2), used to
// disambiguate between "name" and "headline" by similarity.
func extractJSONLD(root *html.Node, heuristicTitle string) jsonLDResult {
	for _, script := range findAll(root, "SCRIPT") {
		if !strings.EqualFold(dom.Attr(script, "type"), "application/ld+json") {
			continue
		}
		raw := dom.TextContent(script)
		if m := cdataRe.FindStringSubmatch(raw); m != nil {
			raw = m[1]
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			continue
		}

		obj := findArticleObject(value)
		if obj == nil {
			continue
		}
		return extractFields(obj, heuristicTitle)
	}
	return jsonLDResult{}
}

func findArticleObject(value any) map[string]any {
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok && isArticleTyped(obj) {
				return obj
			}
		}
		return nil
	case map[string]any:
		if !validContext(v) {
			return nil
		}
		if isArticleTyped(v) {
			return v
		}
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				if obj, ok := item.(map[string]any); ok && isArticleTyped(obj) {
					return obj
				}
			}
		}
		return nil
	default:
		return nil
	}
}

func validContext(v map[string]any) bool {
	switch ctx := v["@context"].(type) {
	case string:
		return schemaContextRe.MatchString(ctx)
	case map[string]any:
		if vocab, ok := ctx["@vocab"].(string); ok {
			return schemaContextRe.MatchString(vocab)
		}
	}
	// Only top-level objects are checked here; objects reached via @graph
	// are covered by their parent's context.
	return false
}

func isArticleTyped(v map[string]any) bool {
	t, ok := v["@type"].(string)
	if !ok {
		return false
	}
	return articleTypeRe.MatchString(t)
}

func extractFields(obj map[string]any, heuristicTitle string) jsonLDResult {
	var result jsonLDResult

	name, _ := obj["name"].(string)
	headline, _ := obj["headline"].(string)
	switch {
	case name != "" && headline != "" && name != headline:
		preferHeadline := text.Similarity(headline, heuristicTitle) >= 0.75 && text.Similarity(name, heuristicTitle) < 0.75
		if preferHeadline {
			result.Title = headline
		} else {
			result.Title = name
		}
	case headline != "":
		result.Title = headline
	case name != "":
		result.Title = name
	}

	if author, ok := obj["author"].(map[string]any); ok {
		if n, ok := author["name"].(string); ok {
			result.Byline = n
		}
	} else if authors, ok := obj["author"].([]any); ok {
		var names []string
		for _, a := range authors {
			if m, ok := a.(map[string]any); ok {
				if n, ok := m["name"].(string); ok && n != "" {
					names = append(names, n)
				}
			}
		}
		result.Byline = strings.Join(names, ", ")
	}

	if desc, ok := obj["description"].(string); ok {
		result.Excerpt = desc
	}
	if pub, ok := obj["publisher"].(map[string]any); ok {
		if n, ok := pub["name"].(string); ok {
			result.SiteName = n
		}
	}
	if dp, ok := obj["datePublished"].(string); ok {
		result.DatePublished = dp
	}

	return result
}
