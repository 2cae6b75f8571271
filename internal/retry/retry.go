// Package retry implements spec.md C11: the four-attempt relaxation loop
// that re-runs candidate traversal through article preparation with
// progressively looser filtering until the extracted text clears a
// minimum length, or gives up and returns the longest attempt.
package retry

import (
	"sort"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/assemble"
	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/prepare"
	"github.com/clarity-reader/readability/internal/scoring"
	"github.com/clarity-reader/readability/internal/text"
)

// DefaultCharThreshold is spec.md §4.11's default minimum extracted
// text length.
const DefaultCharThreshold = 500

// DefaultMaxCandidates bounds the top-N candidate list C6/C7 work from.
const DefaultMaxCandidates = 5

type flags struct {
	stripUnlikelys     bool
	weightClasses      bool
	cleanConditionally bool
}

func allFlags() flags {
	return flags{stripUnlikelys: true, weightClasses: true, cleanConditionally: true}
}

type attempt struct {
	container *html.Node
	textLen   int
}

// Result is what survives a retry run: the chosen container, the store
// holding its content scores (needed by callers that still want to
// inspect per-node scores), and how many attempts were required.
type Result struct {
	Container *html.Node
	Store     *dom.Store
	Attempts  int
}

// Run implements the C11 loop. body is the already-preprocessed document
// body; byline is metadata's byline slot, filled in by traversal if still
// empty. charThreshold <= 0 selects DefaultCharThreshold; maxCandidates
// <= 0 selects DefaultMaxCandidates. When no attempt clears the threshold
// and even the longest attempt has no text, Container is nil.
func Run(body *html.Node, byline *string, charThreshold, maxCandidates int, prepareCfg prepare.Config) Result {
	if charThreshold <= 0 {
		charThreshold = DefaultCharThreshold
	}
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}

	f := allFlags()
	var attempts []attempt
	stores := map[*html.Node]*dom.Store{}

	for iter := 0; iter < 4; iter++ {
		clone := dom.Clone(body)
		store := dom.NewStore()

		scorable := scoring.Traverse(clone, f.stripUnlikelys, byline)
		selection := scoring.SelectTopCandidate(store, clone, scorable, f.weightClasses, maxCandidates)
		container := assemble.Assemble(store, selection.Top, false)
		prepare.Prepare(store, container, f.cleanConditionally, prepareCfg)

		textLen := len([]rune(text.Normalize(dom.InnerText(container))))
		if textLen >= charThreshold {
			return Result{Container: container, Store: store, Attempts: iter + 1}
		}

		attempts = append(attempts, attempt{container, textLen})
		stores[container] = store

		switch {
		case f.stripUnlikelys:
			f.stripUnlikelys = false
		case f.weightClasses:
			f.weightClasses = false
		case f.cleanConditionally:
			f.cleanConditionally = false
		default:
			best := bestAttempt(attempts)
			return Result{Container: best, Store: stores[best], Attempts: iter + 1}
		}
	}

	best := bestAttempt(attempts)
	return Result{Container: best, Store: stores[best], Attempts: len(attempts)}
}

func bestAttempt(attempts []attempt) *html.Node {
	sort.SliceStable(attempts, func(i, j int) bool { return attempts[i].textLen > attempts[j].textLen })
	if attempts[0].textLen == 0 {
		return nil
	}
	return attempts[0].container
}
