package retry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/prepare"
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

func TestRunSucceedsOnFirstAttemptWithEnoughText(t *testing.T) {
	longText := strings.Repeat("readable article content ", 40)
	body := parseBody(t, `<article><p>`+longText+`</p></article>`)

	byline := ""
	result := Run(body, &byline, 0, 0, prepare.Config{})

	require.NotNil(t, result.Container)
	assert.Equal(t, 1, result.Attempts)
}

func TestRunFallsBackToLongestAttemptWhenContentIsThin(t *testing.T) {
	body := parseBody(t, `<div class="sidebar">short</div>`)

	byline := ""
	result := Run(body, &byline, 500, 5, prepare.Config{})

	require.NotNil(t, result.Container)
	assert.Equal(t, 4, result.Attempts)
}

func TestRunNeverMutatesCallerBody(t *testing.T) {
	body := parseBody(t, `<article><p>`+strings.Repeat("word ", 50)+`</p></article>`)
	before := dom.InnerText(body)

	byline := ""
	Run(body, &byline, 0, 0, prepare.Config{})

	assert.Equal(t, before, dom.InnerText(body))
}
