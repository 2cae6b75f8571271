package scoring

import (
	"sort"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/text"
)

// GetWeight implements the class/id weight table of spec.md §4.6. Both
// the positive and negative patterns can match the same string, netting
// to zero — that is intentional, not a bug.
func GetWeight(n *html.Node) int {
	weight := 0
	if cls := dom.ClassName(n); cls != "" {
		if negativeWeightRe.MatchString(cls) {
			weight -= 25
		}
		if positiveWeightRe.MatchString(cls) {
			weight += 25
		}
	}
	if id := dom.ID(n); id != "" {
		if negativeWeightRe.MatchString(id) {
			weight -= 25
		}
		if positiveWeightRe.MatchString(id) {
			weight += 25
		}
	}
	return weight
}

// ensureInitialized seeds n's annotation with its base tag score (plus
// class/id weight, if active) the first time n is touched by scoring,
// per spec.md §4.5's initializeNode.
func ensureInitialized(store *dom.Store, n *html.Node, weightClasses bool) {
	if store.Has(n) {
		return
	}
	base := baseScoreByTag[dom.TagName(n)]
	if weightClasses {
		base += float64(GetWeight(n))
	}
	store.Init(n, base)
}

// ancestorChain returns up to max element ancestors of n, nearest first
// (parent = level 0).
func ancestorChain(n *html.Node, max int) []*html.Node {
	var out []*html.Node
	for p := dom.Parent(n); p != nil && len(out) < max; p = dom.Parent(p) {
		if dom.IsElement(p) {
			out = append(out, p)
		}
	}
	return out
}

// scoreDivisor implements spec.md §4.5's ancestor propagation divisor:
// L=0 -> 1, L=1 -> 2, L>=2 -> L*3.
func scoreDivisor(level int) float64 {
	switch level {
	case 0:
		return 1
	case 1:
		return 2
	default:
		return float64(level) * 3
	}
}

// ScoreElement computes n's content-score increment (comma count + length
// bonus) and propagates it into n's ancestors (up to 5 levels), per
// spec.md §4.5. Elements shorter than 25 characters, or with no ancestor
// within 5 levels, are skipped entirely — they never touch the store.
func ScoreElement(store *dom.Store, n *html.Node, weightClasses bool) {
	innerText := dom.InnerText(n)
	if len([]rune(innerText)) < 25 {
		return
	}

	ancestors := ancestorChain(n, 5)
	if len(ancestors) == 0 {
		return
	}

	ensureInitialized(store, n, weightClasses)

	increment := 1.0 + float64(text.CountCommas(innerText))
	lengthBonus := len([]rune(innerText)) / 100
	if lengthBonus > 3 {
		lengthBonus = 3
	}
	increment += float64(lengthBonus)

	for level, ancestor := range ancestors {
		ensureInitialized(store, ancestor, weightClasses)
		store.Add(ancestor, increment/scoreDivisor(level))
	}
}

// AdjustedScore applies spec.md §4.5's link-density adjustment:
// contentScore * (1 - linkDensity).
func AdjustedScore(store *dom.Store, n *html.Node) float64 {
	return store.Score(n) * (1 - dom.LinkDensity(n))
}

// SelectTopCandidates returns the n highest link-density-adjusted-scoring
// elements touched by scoring, in descending order, per spec.md §4.5's
// bounded top-N retention.
func SelectTopCandidates(store *dom.Store, n int) []*html.Node {
	type scored struct {
		node     *html.Node
		adjusted float64
	}

	touched := store.Nodes()
	cands := make([]scored, 0, len(touched))
	for _, node := range touched {
		cands = append(cands, scored{node, AdjustedScore(store, node)})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].adjusted > cands[j].adjusted })

	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]*html.Node, len(cands))
	for i, c := range cands {
		out[i] = c.node
	}
	return out
}
