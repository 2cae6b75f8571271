package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseDoc(t *testing.T, head, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><head>" + head + "</head><body>" + body + "</body></html>"))
	require.NoError(t, err)
	return doc
}

func TestExtractPrefersMetaTagsOverHeuristic(t *testing.T) {
	doc := parseDoc(t, `
		<title>Fallback Title</title>
		<meta property="og:title" content="Open Graph Title">
		<meta name="author" content="Jane Doe">
		<meta property="og:description" content="A short summary.">
		<meta property="og:site_name" content="Example News">
	`, `<p>body</p>`)

	m := Extract(doc, true)
	assert.Equal(t, "Open Graph Title", m.Title)
	assert.Equal(t, "Jane Doe", m.Byline)
	assert.Equal(t, "A short summary.", m.Excerpt)
	assert.Equal(t, "Example News", m.SiteName)
}

func TestExtractFallsBackToHeuristicTitle(t *testing.T) {
	doc := parseDoc(t, `<title>My Article - Example Site</title>`, `<h1>My Article</h1>`)
	m := Extract(doc, true)
	assert.NotEmpty(t, m.Title)
}

func TestExtractRejectsURLAuthorMeta(t *testing.T) {
	doc := parseDoc(t, `<meta property="article:author" content="https://example.com/authors/jane">`, `<p>body</p>`)
	m := Extract(doc, true)
	assert.Empty(t, m.Byline)
}

func TestExtractDisableJSONLDLeavesJSONLDSlotEmpty(t *testing.T) {
	doc := parseDoc(t, `
		<script type="application/ld+json">
		{"@context":"https://schema.org","@type":"NewsArticle","headline":"JSON-LD Headline"}
		</script>
	`, `<p>body</p>`)

	withJSONLD := Extract(doc, false)
	assert.Equal(t, "JSON-LD Headline", withJSONLD.Title)

	doc2 := parseDoc(t, `
		<script type="application/ld+json">
		{"@context":"https://schema.org","@type":"NewsArticle","headline":"JSON-LD Headline"}
		</script>
	`, `<p>body</p>`)
	withoutJSONLD := Extract(doc2, true)
	assert.NotEqual(t, "JSON-LD Headline", withoutJSONLD.Title)
}

func TestExtractUnescapesEntities(t *testing.T) {
	doc := parseDoc(t, `<meta property="og:title" content="Tom &amp; Jerry">`, `<p>body</p>`)
	m := Extract(doc, true)
	assert.Equal(t, "Tom & Jerry", m.Title)
}
