package preprocess

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

// ReplaceBrRuns implements spec.md §4.3 step 4: runs of two or more
// consecutive <br> (ignoring intervening whitespace text) collapse into a
// single <p>, which then absorbs the phrasing content that follows it
// until a block element or another <br> run is reached.
func ReplaceBrRuns(root *html.Node) {
	for _, br := range findAll(root, brTag) {
		if br.Parent == nil {
			continue // already consumed by an earlier run in this pass
		}

		removed := 0
		next := consumeWhitespaceForward(br)
		for next != nil && dom.TagName(next) == "BR" {
			toRemove := next
			next = consumeWhitespaceForward(toRemove)
			dom.Remove(toRemove)
			removed++
		}
		if removed == 0 {
			continue
		}

		p := dom.CreateElement("p")
		dom.ReplaceNode(br, p)
		absorbPhrasingContent(p)
		trimTrailingWhitespace(p)

		if parent := dom.Parent(p); parent != nil && dom.TagName(parent) == "P" {
			dom.Retag(parent, "div")
		}
	}
}

// consumeWhitespaceForward removes every purely-whitespace text sibling
// immediately following n and returns the first remaining sibling (text
// with content, or an element), or nil. The intervening whitespace is
// formatting noise belonging to the <br> run being collapsed, not content
// worth preserving.
func consumeWhitespaceForward(n *html.Node) *html.Node {
	s := n.NextSibling
	for s != nil && dom.IsText(s) && strings.TrimSpace(s.Data) == "" {
		toRemove := s
		s = s.NextSibling
		dom.Remove(toRemove)
	}
	return s
}

// peekSkippingWhitespace is consumeWhitespaceForward's non-destructive
// twin: it looks past whitespace text without removing it, for the
// two-<br>-in-a-row lookahead in absorbPhrasingContent.
func peekSkippingWhitespace(n *html.Node) *html.Node {
	s := n.NextSibling
	for s != nil && dom.IsText(s) && strings.TrimSpace(s.Data) == "" {
		s = s.NextSibling
	}
	return s
}

// absorbPhrasingContent moves p's following siblings into p as long as
// they are phrasing content, stopping at a block element or at a <br>
// that is itself immediately followed by another <br> (that pair seeds
// the next paragraph instead).
func absorbPhrasingContent(p *html.Node) {
	sibling := p.NextSibling
	for sibling != nil {
		if dom.IsElement(sibling) && dom.TagName(sibling) == "BR" {
			if nextElem := peekSkippingWhitespace(sibling); nextElem != nil && dom.TagName(nextElem) == "BR" {
				break
			}
		}
		if !IsPhrasingContent(sibling) {
			break
		}
		next := sibling.NextSibling
		dom.AppendChild(p, sibling)
		sibling = next
	}
}

// trimTrailingWhitespace removes trailing whitespace-only text children
// from n.
func trimTrailingWhitespace(n *html.Node) {
	for {
		last := n.LastChild
		if last != nil && dom.IsText(last) && strings.TrimSpace(last.Data) == "" {
			dom.Remove(last)
			continue
		}
		break
	}
}
