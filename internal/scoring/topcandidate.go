package scoring

import (
	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

// SelectResult is the outcome of top-candidate refinement: the chosen
// container, the ranked candidate list it was drawn from, and whether a
// fresh <div> had to be fabricated out of BODY's children as a last
// resort.
type SelectResult struct {
	Top        *html.Node
	Candidates []*html.Node
	Fabricated bool
}

// SelectTopCandidate implements spec.md §4.4's top-candidate refinement
// (C7): bare-body fabrication, alternate-ancestor promotion, parent
// climbing, and single-child climbing.
func SelectTopCandidate(store *dom.Store, body *html.Node, scorable []*html.Node, weightClasses bool, maxCandidates int) SelectResult {
	for _, n := range scorable {
		ScoreElement(store, n, weightClasses)
	}

	candidates := SelectTopCandidates(store, maxCandidates)

	var top *html.Node
	fabricated := false
	if len(candidates) == 0 || dom.TagName(candidates[0]) == "BODY" {
		// Bare-body fabrication (spec.md §4.7): no scored candidate beat
		// BODY itself. Build a fresh <div>, move every one of BODY's
		// child nodes (elements and text alike) into it, and seed its
		// readability annotation. This can only trigger once per parse
		// attempt: the fabricated div, not BODY, is what candidate
		// refinement continues with below.
		top = fabricateTopCandidate(store, body)
		fabricated = true
	} else {
		top = candidates[0]
	}

	top = promoteAlternateAncestor(store, top, candidates)
	top = climbToStrongestParent(store, top, body)
	top = climbSingleChild(top)

	return SelectResult{Top: top, Candidates: candidates, Fabricated: fabricated}
}

// fabricateTopCandidate builds the new <div> spec.md §4.7 prescribes when
// no real candidate outranks BODY: every one of body's child nodes
// (elements and text nodes alike, preserving order) is moved into the
// div, which is then appended back into body and seeded with a zero
// content score so later steps (parent climbing, sibling assembly) can
// read it like any other scored element.
func fabricateTopCandidate(store *dom.Store, body *html.Node) *html.Node {
	div := dom.CreateElement("div")
	for _, child := range dom.ChildNodes(body) {
		dom.AppendChild(div, child)
	}
	dom.AppendChild(body, div)
	store.Init(div, 0)
	return div
}

// promoteAlternateAncestor implements the "alternate ancestor" rule: among
// the other ranked candidates whose adjusted score is at least 0.75x the
// top candidate's, if at least 3 share a common ancestor, that ancestor is
// promoted over the raw top candidate. Ties (an ancestor shared by several
// qualifying groups) break toward the first-encountered ancestor in
// candidate-rank order, per spec.md §9's open-question resolution.
func promoteAlternateAncestor(store *dom.Store, top *html.Node, candidates []*html.Node) *html.Node {
	if len(candidates) < 3 {
		return top
	}

	topScore := AdjustedScore(store, top)
	threshold := topScore * 0.75

	counts := map[*html.Node]int{}
	var order []*html.Node
	for _, c := range candidates {
		if c == top {
			continue
		}
		if AdjustedScore(store, c) < threshold {
			continue
		}
		for p := dom.Parent(c); p != nil; p = dom.Parent(p) {
			if !dom.IsElement(p) {
				continue
			}
			if dom.TagName(p) == "BODY" {
				break
			}
			if counts[p] == 0 {
				order = append(order, p)
			}
			counts[p]++
		}
	}

	for _, anc := range order {
		if counts[anc] >= 3 {
			store.Init(anc, 0)
			return anc
		}
	}
	return top
}

// climbToStrongestParent climbs from top toward BODY, switching to an
// ancestor whenever its annotated score exceeds the best score seen so
// far (spec.md §4.4's parent-climbing step). BODY itself is never
// selected as the climb target, only used as the stopping point.
func climbToStrongestParent(store *dom.Store, top *html.Node, body *html.Node) *html.Node {
	best := top
	bestScore := store.Score(top)

	cur := top
	for {
		parent := dom.Parent(cur)
		if parent == nil || dom.TagName(parent) == "BODY" || parent == body {
			break
		}
		if !store.Has(parent) {
			cur = parent
			continue
		}
		s := store.Score(parent)
		if s > bestScore {
			best = parent
			bestScore = s
		}
		cur = parent
	}
	return best
}

// climbSingleChild climbs past any chain of ancestors that each have
// exactly one element child, so the container captures any wrapping
// <div>s the content sits alone inside.
func climbSingleChild(top *html.Node) *html.Node {
	for {
		parent := dom.Parent(top)
		if parent == nil || dom.TagName(parent) == "BODY" {
			return top
		}
		if len(dom.Children(parent)) != 1 {
			return top
		}
		top = parent
	}
}
