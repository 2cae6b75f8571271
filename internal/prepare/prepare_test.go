package prepare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if dom.TagName(n) == "BODY" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return body
}

func TestCleanStylesStripsPresentationalAttrs(t *testing.T) {
	body := parseBody(t, `<table width="100" height="50" style="color:red"><tr><td align="left">x</td></tr></table>`)
	cleanStyles(body)

	table := dom.FirstElementChild(body)
	assert.False(t, dom.HasAttr(table, "width"))
	assert.False(t, dom.HasAttr(table, "style"))
}

func TestCleanStylesSkipsSVG(t *testing.T) {
	body := parseBody(t, `<svg style="fill:red"></svg>`)
	cleanStyles(body)
	svg := dom.FirstElementChild(body)
	assert.Equal(t, "fill:red", dom.Attr(svg, "style"))
}

func TestMarkDataTablesDetectsRealTable(t *testing.T) {
	body := parseBody(t, `<table><caption>data</caption><tr><td>1</td></tr></table>`)
	markDataTables(body)
	table := dom.FirstElementChild(body)
	assert.True(t, dom.HasAttr(table, "data-readability-table"))
}

func TestMarkDataTablesSkipsLayoutTable(t *testing.T) {
	body := parseBody(t, `<table><tr><td>1</td></tr></table>`)
	markDataTables(body)
	table := dom.FirstElementChild(body)
	assert.False(t, dom.HasAttr(table, "data-readability-table"))
}

func TestFixLazyImagesCopiesDataSrc(t *testing.T) {
	body := parseBody(t, `<img data-src="photo.jpg">`)
	fixLazyImages(body)
	img := dom.FirstElementChild(body)
	assert.Equal(t, "photo.jpg", dom.Attr(img, "src"))
}

func TestCleanAbsoluteKeepsAllowedVideoEmbed(t *testing.T) {
	body := parseBody(t, `<iframe src="https://www.youtube.com/embed/x"></iframe><iframe src="https://tracker.example/x"></iframe>`)
	cleanAbsolute(body, Config{}, "IFRAME")
	remaining := dom.Children(body)
	require.Len(t, remaining, 1)
	assert.Contains(t, dom.Attr(remaining[0], "src"), "youtube")
}

func TestRemoveEmptyParagraphs(t *testing.T) {
	body := parseBody(t, `<p>   </p><p>keep</p><p><img src="x.jpg"></p>`)
	removeEmptyParagraphs(body)
	assert.Len(t, dom.Children(body), 2)
}

func TestReplaceH1WithH2(t *testing.T) {
	body := parseBody(t, `<h1>Title</h1>`)
	replaceH1WithH2(body)
	assert.Equal(t, "H2", dom.TagName(dom.FirstElementChild(body)))
}

func TestFlattenSingleCellTables(t *testing.T) {
	body := parseBody(t, `<table><tbody><tr><td>just text</td></tr></tbody></table>`)
	flattenSingleCellTables(body)
	replaced := dom.FirstElementChild(body)
	assert.Equal(t, "P", dom.TagName(replaced))
	assert.Equal(t, "just text", dom.InnerText(replaced))
}

func TestPrepareRunsFullSequenceWithoutPanicking(t *testing.T) {
	body := parseBody(t, `<div><h1>Title</h1><p style="color:red">`+strings.Repeat("word ", 10)+`</p><form><input></form></div>`)
	store := dom.NewStore()
	assert.NotPanics(t, func() {
		Prepare(store, body, true, Config{})
	})
}
