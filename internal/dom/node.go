// Package dom is the abstract view over the parsed document that every
// other extraction stage consumes. It wraps golang.org/x/net/html.Node
// directly rather than goquery.Selection: the pipeline needs the primitive
// DOM surgery spec.md §6 names (createElement, replaceChild, appendChild,
// removeChild, node-identity comparison) and goquery's jQuery-style API
// does not expose those cleanly.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Node types, mirroring spec.md §6.
const (
	ElementNode = html.ElementNode
	TextNode    = html.TextNode
)

// IsElement reports whether n is an element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// IsText reports whether n is a text node.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// TagName returns the element's tag name, uppercased, per spec.md §3.
// Returns "" for non-element nodes.
func TagName(n *html.Node) string {
	if !IsElement(n) {
		return ""
	}
	return strings.ToUpper(n.Data)
}

// Attr returns the named attribute's value, or "" if absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the element carries the named attribute.
func HasAttr(n *html.Node, key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// SetAttr sets (or replaces) the named attribute.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	for i, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes the named attribute, if present.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if !strings.EqualFold(a.Key, key) {
			out = append(out, a)
		}
	}
	n.Attr = out
}

// ID returns the element's id attribute.
func ID(n *html.Node) string { return Attr(n, "id") }

// ClassName returns the element's class attribute.
func ClassName(n *html.Node) string { return Attr(n, "class") }

// Parent returns the node's parent, or nil at the root.
func Parent(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	return n.Parent
}

// Children returns a snapshot slice of n's element children, in document
// order. A snapshot, never a live view: callers are free to mutate the
// tree (reparent, remove) while iterating the result. See spec.md §5 on
// the prohibition on live node lists.
func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			out = append(out, c)
		}
	}
	return out
}

// ChildNodes returns a snapshot of all of n's child nodes (elements and
// text alike), in document order.
func ChildNodes(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// FirstElementChild returns n's first child that is an element, or nil.
func FirstElementChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if IsElement(c) {
			return c
		}
	}
	return nil
}

// NextElementSibling returns the next sibling that is an element, or nil.
func NextElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if IsElement(s) {
			return s
		}
	}
	return nil
}

// PrevElementSibling returns the previous sibling that is an element, or nil.
func PrevElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if IsElement(s) {
			return s
		}
	}
	return nil
}

// CreateElement builds a new, detached element node with the given
// (lower-cased) tag name.
func CreateElement(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: strings.ToLower(tag), DataAtom: 0}
}

// CreateTextNode builds a new, detached text node.
func CreateTextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Remove detaches n from its parent, if any.
func Remove(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// AppendChild appends child to parent, detaching it from any prior parent
// first so a node is never attached to two places at once (spec.md §3
// invariant: "sibling assembly never duplicates a node").
func AppendChild(parent, child *html.Node) {
	if parent == nil || child == nil {
		return
	}
	Remove(child)
	parent.AppendChild(child)
}

// InsertBefore inserts newChild immediately before ref under parent,
// detaching newChild from any prior parent first.
func InsertBefore(parent, newChild, ref *html.Node) {
	if parent == nil || newChild == nil {
		return
	}
	Remove(newChild)
	parent.InsertBefore(newChild, ref)
}

// ReplaceNode substitutes old with replacement in old's parent, moving
// old's children across when requested by the caller beforehand. old is
// left detached afterward.
func ReplaceNode(old, replacement *html.Node) {
	if old == nil || old.Parent == nil || replacement == nil {
		return
	}
	Remove(replacement)
	old.Parent.InsertBefore(replacement, old)
	old.Parent.RemoveChild(old)
}

// Retag mutates n's tag name in place, preserving its attributes and
// children untouched (spec.md §8 property 2: attribute preservation).
func Retag(n *html.Node, newTag string) {
	if n == nil {
		return
	}
	n.Data = strings.ToLower(newTag)
}

// MoveChildren reparents every child of src onto dst, in order, leaving
// src childless.
func MoveChildren(dst, src *html.Node) {
	if dst == nil || src == nil {
		return
	}
	for _, c := range ChildNodes(src) {
		AppendChild(dst, c)
	}
}

// CloneAttributes copies every attribute from src to dst, overwriting any
// attribute dst already carries with the same name.
func CloneAttributes(dst, src *html.Node) {
	if dst == nil || src == nil {
		return
	}
	for _, a := range src.Attr {
		SetAttr(dst, a.Key, a.Val)
	}
}

// TextContent concatenates every text-node descendant of n, depth-first,
// unnormalized (equivalent to the DOM's textContent getter).
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// IsSameNode reports identity equality between two node pointers.
func IsSameNode(a, b *html.Node) bool { return a != nil && a == b }

// Clone deep-copies n and its descendants into a new, detached subtree.
// This is the structural equivalent of caching and restoring
// document.body.innerHTML between retry attempts (spec.md §4.11):
// cloning the parsed node tree sidesteps a serialize/reparse round trip
// while giving every attempt its own pristine copy.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	clone := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(Clone(c))
	}
	return clone
}
