package prepare

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clarity-reader/readability/internal/dom"
)

func TestCleanConditionallyRemovesLowDensityDiv(t *testing.T) {
	// Many links, almost no other text: should fail the link-density
	// heuristic and be removed.
	links := strings.Repeat(`<a href="/x">link</a> `, 20)
	body := parseBody(t, `<div class="links">`+links+`</div>`)
	store := dom.NewStore()

	div := dom.FirstElementChild(body)
	store.Init(div, 0)

	cleanConditionally(store, body, "DIV", Config{})
	assert.Empty(t, dom.Children(body))
}

func TestCleanConditionallyKeepsDenseTextWithManyCommas(t *testing.T) {
	text := strings.Repeat("word, ", 15)
	body := parseBody(t, `<div>`+text+`</div>`)
	store := dom.NewStore()
	div := dom.FirstElementChild(body)
	store.Init(div, 0)

	cleanConditionally(store, body, "DIV", Config{})
	assert.Len(t, dom.Children(body), 1)
}

func TestCleanConditionallyProtectsDataTable(t *testing.T) {
	body := parseBody(t, `<table data-readability-table="true"><tr><td><a href="/x">link</a></td></tr></table>`)
	store := dom.NewStore()
	table := dom.FirstElementChild(body)
	store.Init(table, 0)

	cleanConditionally(store, body, "TABLE", Config{})
	assert.Len(t, dom.Children(body), 1)
}
