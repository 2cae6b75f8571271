package assemble

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

func TestAssembleKeepsHighScoringSibling(t *testing.T) {
	body := parseBody(t, `<div id="top"></div><div id="sibling"></div>`)
	children := dom.Children(body)
	top, sibling := children[0], children[1]

	store := dom.NewStore()
	store.Init(top, 100)
	store.Init(sibling, 50) // well above the 0.2*topScore=20 threshold

	container := Assemble(store, top, false)
	assert.Len(t, dom.Children(container), 2)
}

func TestAssembleDropsLowScoringSibling(t *testing.T) {
	body := parseBody(t, `<div id="top"></div><div id="sibling"></div>`)
	children := dom.Children(body)
	top, sibling := children[0], children[1]

	store := dom.NewStore()
	store.Init(top, 100)
	store.Init(sibling, 1)

	container := Assemble(store, top, false)
	assert.Len(t, dom.Children(container), 1)
}

func TestAssembleKeepsLongLowLinkDensityParagraph(t *testing.T) {
	longText := strings.Repeat("word ", 30)
	body := parseBody(t, `<div id="top"></div><p>`+longText+`</p>`)
	children := dom.Children(body)
	top := children[0]

	store := dom.NewStore()
	store.Init(top, 100)

	container := Assemble(store, top, false)
	assert.Len(t, dom.Children(container), 2)
}

func TestAssembleRetagsNonContainerSiblingTags(t *testing.T) {
	body := parseBody(t, `<div id="top"></div><span id="sibling">x</span>`)
	children := dom.Children(body)
	top, sibling := children[0], children[1]

	store := dom.NewStore()
	store.Init(top, 100)
	store.Init(sibling, 50)

	container := Assemble(store, top, false)
	kept := dom.Children(container)
	require.Len(t, kept, 2)
	assert.Equal(t, "DIV", dom.TagName(kept[1]))
}

func TestAssemblePagingSetsID(t *testing.T) {
	body := parseBody(t, `<div id="top"></div>`)
	top := dom.FirstElementChild(body)
	store := dom.NewStore()
	store.Init(top, 10)

	container := Assemble(store, top, true)
	assert.Equal(t, "readability-content", dom.Attr(container, "id"))
}
