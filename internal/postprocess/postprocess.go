// Package postprocess implements spec.md C10: URI resolution, nested
// wrapper collapse, and class-attribute cleanup on the finished article
// container.
package postprocess

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
)

var srcsetPartRe = regexp.MustCompile(`(\S+)(\s+[\d.]+[xw])?(\s*(?:,|$))`)

var uriTags = map[string][]string{
	"IMG":    {"src"},
	"PICTURE": {"src"},
	"FIGURE": {"src"},
	"VIDEO":  {"src", "poster"},
	"AUDIO":  {"src"},
	"SOURCE": {"src"},
}

// Run applies the three C10 steps, in order, to articleContent.
func Run(articleContent *html.Node, base, docURI *url.URL, classesToPreserve map[string]bool, keepClasses bool) {
	resolveURIs(articleContent, base, docURI)
	simplifyNestedWrappers(articleContent)
	cleanClasses(articleContent, classesToPreserve, keepClasses)
}

func findAll(root *html.Node, tags ...string) []*html.Node {
	set := make(map[string]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for _, c := range dom.Children(n) {
			if set[dom.TagName(c)] {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// resolveURIs implements spec.md §4.10 step 1.
func resolveURIs(root *html.Node, base, docURI *url.URL) {
	for _, a := range findAll(root, "A") {
		href := dom.Attr(a, "href")
		if href == "" {
			continue
		}
		if strings.HasPrefix(href, "javascript:") {
			stripJavascriptLink(a)
			continue
		}
		if base != nil && docURI != nil && base.String() == docURI.String() && strings.HasPrefix(href, "#") {
			continue
		}
		if resolved, ok := resolve(base, href); ok {
			dom.SetAttr(a, "href", resolved)
		}
	}

	for tag, attrs := range uriTags {
		for _, n := range findAll(root, tag) {
			for _, attr := range attrs {
				if v := dom.Attr(n, attr); v != "" {
					if resolved, ok := resolve(base, v); ok {
						dom.SetAttr(n, attr, resolved)
					}
				}
			}
			if srcset := dom.Attr(n, "srcset"); srcset != "" {
				dom.SetAttr(n, "srcset", resolveSrcset(base, srcset))
			}
		}
	}
}

func resolve(base *url.URL, ref string) (string, bool) {
	if base == nil {
		return ref, false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref, false
	}
	return base.ResolveReference(u).String(), true
}

func resolveSrcset(base *url.URL, srcset string) string {
	return srcsetPartRe.ReplaceAllStringFunc(srcset, func(part string) string {
		m := srcsetPartRe.FindStringSubmatch(part)
		if m == nil || m[1] == "" {
			return part
		}
		resolved, ok := resolve(base, m[1])
		if !ok {
			resolved = m[1]
		}
		return resolved + m[2] + m[3]
	})
}

// stripJavascriptLink implements the javascript: href special case: a
// single-text-child link becomes bare text, otherwise its children are
// rewrapped in a <span>.
func stripJavascriptLink(a *html.Node) {
	children := dom.ChildNodes(a)
	if len(children) == 1 && dom.IsText(children[0]) {
		dom.ReplaceNode(a, dom.CreateTextNode(children[0].Data))
		return
	}
	span := dom.CreateElement("span")
	dom.MoveChildren(span, a)
	dom.ReplaceNode(a, span)
}

// simplifyNestedWrappers implements spec.md §4.10 step 2.
func simplifyNestedWrappers(root *html.Node) {
	for _, n := range findAll(root, "DIV", "SECTION") {
		if n.Parent == nil {
			continue // removed by an earlier iteration
		}
		if strings.HasPrefix(dom.ID(n), "readability") {
			continue
		}

		if isEmptyWrapper(n) {
			dom.Remove(n)
			continue
		}

		children := dom.Children(n)
		if len(children) == 1 {
			only := children[0]
			tag := dom.TagName(only)
			if (tag == "DIV" || tag == "SECTION") && !hasSiblingTextContent(n, only) {
				dom.CloneAttributes(only, n)
				dom.ReplaceNode(n, only)
			}
		}
	}
}

func isEmptyWrapper(n *html.Node) bool {
	if strings.TrimSpace(dom.TextContent(n)) != "" {
		return false
	}
	for _, c := range dom.Children(n) {
		tag := dom.TagName(c)
		if tag != "BR" && tag != "HR" {
			return false
		}
	}
	return true
}

func hasSiblingTextContent(parent, only *html.Node) bool {
	for _, c := range dom.ChildNodes(parent) {
		if c == only {
			continue
		}
		if dom.IsText(c) && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// cleanClasses implements spec.md §4.10 step 3.
func cleanClasses(root *html.Node, classesToPreserve map[string]bool, keepClasses bool) {
	if keepClasses {
		return
	}
	if classesToPreserve == nil {
		classesToPreserve = map[string]bool{"page": true}
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if dom.IsElement(n) {
			cls := dom.ClassName(n)
			if cls != "" {
				var kept []string
				for _, c := range strings.Fields(cls) {
					if classesToPreserve[c] {
						kept = append(kept, c)
					}
				}
				if len(kept) == 0 {
					dom.RemoveAttr(n, "class")
				} else {
					dom.SetAttr(n, "class", strings.Join(kept, " "))
				}
			}
		}
		for _, c := range dom.Children(n) {
			walk(c)
		}
	}
	walk(root)
}
