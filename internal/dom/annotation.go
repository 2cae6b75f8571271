package dom

import "golang.org/x/net/html"

// Annotation is the transient per-element "readability" record described
// in spec.md §3: created by initializeNode on first touch, mutated by
// scoring and propagation, read by candidate selection and link-density
// adjustment, and discarded with the rest of the per-parse state.
//
// It deliberately lives in a side-table keyed by node identity rather
// than as a DOM attribute (spec.md §9's design note) so foreign/read-only
// DOM providers never need a mutable custom field.
type Annotation struct {
	ContentScore float64
}

// Store is the side-table of Annotations for one Parse call.
type Store struct {
	byNode map[*html.Node]*Annotation
	order  []*html.Node // first-touch order, for deterministic enumeration
}

// NewStore returns an empty annotation store.
func NewStore() *Store {
	return &Store{byNode: make(map[*html.Node]*Annotation)}
}

// Nodes returns every node that has ever been annotated, in the order
// each was first touched.
func (s *Store) Nodes() []*html.Node {
	out := make([]*html.Node, len(s.order))
	copy(out, s.order)
	return out
}

// Has reports whether n has ever been scored.
func (s *Store) Has(n *html.Node) bool {
	_, ok := s.byNode[n]
	return ok
}

// Score returns n's content score, or 0 if n has not been scored.
func (s *Store) Score(n *html.Node) float64 {
	if a, ok := s.byNode[n]; ok {
		return a.ContentScore
	}
	return 0
}

// Init creates n's annotation with the given base score if it does not
// already have one, and returns the (possibly pre-existing) annotation.
func (s *Store) Init(n *html.Node, base float64) *Annotation {
	if a, ok := s.byNode[n]; ok {
		return a
	}
	a := &Annotation{ContentScore: base}
	s.byNode[n] = a
	s.order = append(s.order, n)
	return a
}

// Add adds delta to n's content score, initializing it at 0 first if
// necessary.
func (s *Store) Add(n *html.Node, delta float64) {
	a := s.Init(n, 0)
	a.ContentScore += delta
}
