package preprocess

import "golang.org/x/net/html"

import "github.com/clarity-reader/readability/internal/dom"

// findAll snapshots every descendant element whose tag is in tags, in
// document order. A snapshot, not a live list: every preprocessing pass
// mutates the tree while iterating, so it must never walk a live
// collection (spec.md §5, §9).
func findAll(root *html.Node, tags map[string]bool) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for _, c := range dom.ChildNodes(n) {
			if dom.IsElement(c) {
				if tags[dom.TagName(c)] {
					out = append(out, c)
				}
				walk(c)
			}
		}
	}
	walk(root)
	return out
}
