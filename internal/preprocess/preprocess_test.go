package preprocess

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

func TestIsPhrasingContent(t *testing.T) {
	body := parseBody(t, `<span>text</span><div>block</div><a href="/x"><b>bold</b></a><a href="/x"><div>nested block</div></a>`)
	children := dom.Children(body)
	assert.True(t, IsPhrasingContent(children[0]))
	assert.False(t, IsPhrasingContent(children[1]))
	assert.True(t, IsPhrasingContent(children[2]))
	assert.False(t, IsPhrasingContent(children[3]))
}

func TestStripScriptsAndNoscript(t *testing.T) {
	body := parseBody(t, `<p>keep</p><script>evil()</script><noscript><img src="x.jpg"></noscript>`)
	StripScriptsAndNoscript(body)
	for _, c := range dom.Children(body) {
		assert.NotEqual(t, "SCRIPT", dom.TagName(c))
		assert.NotEqual(t, "NOSCRIPT", dom.TagName(c))
	}
}

func TestStripStyles(t *testing.T) {
	body := parseBody(t, `<style>.x{color:red}</style><p>text</p>`)
	StripStyles(body)
	assert.Len(t, dom.Children(body), 1)
	assert.Equal(t, "P", dom.TagName(dom.Children(body)[0]))
}

func TestWidenFontTags(t *testing.T) {
	body := parseBody(t, `<font color="red">hello</font>`)
	WidenFontTags(body)
	span := dom.FirstElementChild(body)
	assert.Equal(t, "SPAN", dom.TagName(span))
	assert.Equal(t, "red", dom.Attr(span, "color"))
}

func TestUnwrapNoscriptImagesReplacesPlaceholder(t *testing.T) {
	body := parseBody(t, `<img class="lazy"><noscript><img src="real.jpg" alt="real"></noscript>`)
	UnwrapNoscriptImages(body)

	children := dom.Children(body)
	require.Len(t, children, 1)
	assert.Equal(t, "IMG", dom.TagName(children[0]))
	assert.Equal(t, "real.jpg", dom.Attr(children[0], "src"))
}

func TestUnwrapNoscriptImagesSkipsMeaningfulPlaceholder(t *testing.T) {
	body := parseBody(t, `<img src="already-set.jpg"><noscript><img src="real.jpg"></noscript>`)
	UnwrapNoscriptImages(body)

	children := dom.Children(body)
	require.Len(t, children, 2)
	assert.Equal(t, "already-set.jpg", dom.Attr(children[0], "src"))
}

func TestRunExecutesFullSequence(t *testing.T) {
	body := parseBody(t, `<style>.a{}</style><script>x()</script><font>hi<br><br>there</font>`)
	Run(body)

	for _, c := range dom.Children(body) {
		assert.NotContains(t, []string{"STYLE", "SCRIPT"}, dom.TagName(c))
	}
}
