package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
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
		if TagName(n) == "BODY" {
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

func TestNodeAttrHelpers(t *testing.T) {
	body := parseBody(t, `<div id="main" class="a b"></div>`)
	div := FirstElementChild(body)
	assert.Equal(t, "DIV", TagName(div))
	assert.Equal(t, "main", ID(div))
	assert.Equal(t, "a b", ClassName(div))
	assert.True(t, HasAttr(div, "class"))
	assert.False(t, HasAttr(div, "style"))

	SetAttr(div, "style", "color:red")
	assert.Equal(t, "color:red", Attr(div, "style"))
	RemoveAttr(div, "style")
	assert.False(t, HasAttr(div, "style"))
}

func TestChildrenAndSiblings(t *testing.T) {
	body := parseBody(t, `<p>one</p><p>two</p><p>three</p>`)
	children := Children(body)
	assert.Len(t, children, 3)
	assert.Equal(t, "one", TextContent(children[0]))

	assert.Equal(t, children[1], NextElementSibling(children[0]))
	assert.Equal(t, children[0], PrevElementSibling(children[1]))
	assert.Nil(t, NextElementSibling(children[2]))
}

func TestRetagAndMoveChildren(t *testing.T) {
	body := parseBody(t, `<font>hello <b>world</b></font>`)
	font := FirstElementChild(body)
	Retag(font, "span")
	assert.Equal(t, "SPAN", TagName(font))

	dst := CreateElement("div")
	MoveChildren(dst, font)
	assert.Equal(t, "hello world", InnerText(dst))
	assert.Empty(t, Children(font))
}

func TestRemoveAndReplace(t *testing.T) {
	body := parseBody(t, `<p>keep</p><p>drop</p>`)
	children := Children(body)
	Remove(children[1])
	assert.Len(t, Children(body), 1)

	replacement := CreateElement("section")
	ReplaceNode(children[0], replacement)
	assert.Equal(t, "SECTION", TagName(Children(body)[0]))
}

func TestCloneIsIndependent(t *testing.T) {
	body := parseBody(t, `<div id="root"><p>text</p></div>`)
	original := FirstElementChild(body)
	clone := Clone(original)

	assert.Equal(t, InnerText(original), InnerText(clone))
	SetAttr(FirstElementChild(clone), "data-touched", "yes")
	assert.False(t, HasAttr(FirstElementChild(original), "data-touched"))
}

func TestLinkDensity(t *testing.T) {
	body := parseBody(t, `<p>plain text with <a href="https://x.example/">a link</a></p>`)
	p := FirstElementChild(body)
	density := LinkDensity(p)
	assert.Greater(t, density, 0.0)
	assert.LessOrEqual(t, density, 1.0)

	noLinks := parseBody(t, `<p>no links at all here</p>`)
	assert.Equal(t, 0.0, LinkDensity(FirstElementChild(noLinks)))
}

func TestLinkDensityDiscountsHashLinks(t *testing.T) {
	withHash := FirstElementChild(parseBody(t, `<p>text <a href="#section">jump</a></p>`))
	withFull := FirstElementChild(parseBody(t, `<p>text <a href="https://example.com/x">jump</a></p>`))
	assert.Less(t, LinkDensity(withHash), LinkDensity(withFull))
}

func TestStoreInitAddAndOrder(t *testing.T) {
	body := parseBody(t, `<div></div><p></p>`)
	children := Children(body)
	store := NewStore()

	assert.False(t, store.Has(children[0]))
	store.Init(children[0], 5)
	store.Add(children[0], 2)
	assert.Equal(t, 7.0, store.Score(children[0]))

	store.Add(children[1], 3)
	assert.Equal(t, []*html.Node{children[0], children[1]}, store.Nodes())
	assert.True(t, store.Has(children[1]))
}
