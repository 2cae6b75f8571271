package scoring

import (
	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/preprocess"
	"github.com/clarity-reader/readability/internal/text"
)

var emptyCheckTags = map[string]bool{
	"DIV": true, "SECTION": true, "HEADER": true,
	"H1": true, "H2": true, "H3": true, "H4": true, "H5": true, "H6": true,
}

// Traverser implements spec.md C5: depth-first traversal with
// unlikely-candidate filtering, div-to-paragraph promotion, and
// enumeration of the elements C6 should score.
type Traverser struct {
	StripUnlikelys bool
	Byline         *string // metadata byline slot; filled in if still empty
	scorable       []*html.Node
}

// Traverse walks the subtree rooted at root and returns the elements
// enqueued for scoring, in document order.
func Traverse(root *html.Node, stripUnlikelys bool, byline *string) []*html.Node {
	t := &Traverser{StripUnlikelys: stripUnlikelys, Byline: byline}
	t.visit(root)
	return t.scorable
}

func (t *Traverser) visit(n *html.Node) {
	if !dom.IsElement(n) {
		return
	}

	if t.filterNode(n) {
		return // n was removed; nothing further to do
	}

	n = t.handleTag(n)

	if scorableTags[dom.TagName(n)] {
		t.scorable = append(t.scorable, n)
	}

	for _, c := range dom.Children(n) {
		t.visit(c)
	}
}

// filterNode applies steps 1-4 of spec.md §4.4: visibility, byline
// capture, unlikely-candidate stripping, and empty-element removal. It
// returns true when n was removed from the tree.
func (t *Traverser) filterNode(n *html.Node) bool {
	tag := dom.TagName(n)

	// Step 1: visibility.
	if !IsProbablyVisible(n) {
		dom.Remove(n)
		return true
	}

	// Step 2: byline detection.
	if t.Byline != nil && *t.Byline == "" {
		combined := dom.ClassName(n) + " " + dom.ID(n) + " " + dom.Attr(n, "rel") + " " + dom.Attr(n, "itemprop")
		if bylineRe.MatchString(combined) {
			if inner := dom.InnerText(n); len(inner) <= 100 && inner != "" {
				*t.Byline = text.Normalize(inner)
				dom.Remove(n)
				return true
			}
		}
	}

	// Step 3: unlikely-candidate strip.
	if t.StripUnlikelys {
		matchString := dom.ClassName(n) + " " + dom.ID(n)
		isUnlikely := unlikelyCandidatesRe.MatchString(matchString) && !okMatchRe.MatchString(matchString) &&
			!hasAncestorTag(n, tableOrCode) && tag != "BODY" && tag != "A"
		if isUnlikely {
			dom.Remove(n)
			return true
		}
		if role := dom.Attr(n, "role"); role != "" && unlikelyRolesRe.MatchString(role) {
			dom.Remove(n)
			return true
		}
	}

	// Step 4: empty structural element.
	if emptyCheckTags[tag] && dom.InnerText(n) == "" && len(dom.Children(n)) == 0 {
		dom.Remove(n)
		return true
	}

	return false
}

// handleTag applies step 6 of spec.md §4.4 (DIV handling) and returns the
// node that should now be considered in n's place — n itself, unless a
// single-<p>-child DIV collapsed into that <p>.
func (t *Traverser) handleTag(n *html.Node) *html.Node {
	if dom.TagName(n) != "DIV" {
		return n
	}

	groupPhrasingChildren(n)

	children := dom.Children(n)
	if len(children) == 1 && dom.TagName(children[0]) == "P" {
		p := children[0]
		if dom.LinkDensity(p) < 0.25 {
			dom.ReplaceNode(n, p)
			return p
		}
	}

	if !hasBlockChild(n) {
		dom.Retag(n, "p")
	}
	return n
}

func hasBlockChild(n *html.Node) bool {
	for _, c := range dom.Children(n) {
		if divToPBlockTags[dom.TagName(c)] {
			return true
		}
	}
	return false
}

// groupPhrasingChildren wraps each maximal run of consecutive
// phrasing-content child nodes (skipping runs that are pure whitespace)
// in a new <p>, in place.
func groupPhrasingChildren(n *html.Node) {
	childNodes := dom.ChildNodes(n)

	var run []*html.Node
	flush := func() {
		if len(run) == 0 {
			return
		}
		allWhitespace := true
		for _, r := range run {
			if !(dom.IsText(r) && text.IsWhitespace(r.Data)) {
				allWhitespace = false
				break
			}
		}
		if !allWhitespace {
			p := dom.CreateElement("p")
			dom.InsertBefore(n, p, run[0])
			for _, r := range run {
				dom.AppendChild(p, r)
			}
		}
		run = nil
	}

	for _, c := range childNodes {
		if preprocess.IsPhrasingContent(c) {
			run = append(run, c)
		} else {
			flush()
		}
	}
	flush()
}
