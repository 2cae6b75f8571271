package metadata

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/text"
)

// separators lists the title/breadcrumb separators spec.md §4.2 step 1
// recognizes, in no particular priority order (the resolver picks
// whichever occurs latest or earliest in the string, not whichever is
// listed first here).
var separators = []string{" | ", " - ", " – ", " — ", " \\ ", " / ", " > ", " » "}

var hierarchicalSeparators = map[string]bool{" \\ ": true, " / ": true, " > ": true, " » ": true}

// ResolveTitle implements spec.md §4.2's article title heuristic.
func ResolveTitle(root *html.Node, rawTitle string) string {
	origTitle := strings.TrimSpace(rawTitle)
	title := origTitle
	hierarchicalFound := false

	if sep, idx, ok := findLastSeparator(title); ok {
		candidate := strings.TrimSpace(title[:idx])
		if text.WordCount(candidate) < 3 {
			if fsep, fidx, fok := findFirstSeparator(title); fok {
				candidate = strings.TrimSpace(title[fidx+len(fsep):])
			}
		}
		title = candidate
		hierarchicalFound = hierarchicalSeparators[sep] || anyHierarchicalSeparator(origTitle)
	} else if strings.Contains(title, ": ") {
		title = resolveColonTitle(root, title, origTitle)
	} else if runeLen := len([]rune(title)); runeLen > 150 || runeLen < 15 {
		if h1s := findAll(root, "H1"); len(h1s) == 1 {
			title = strings.TrimSpace(dom.TextContent(h1s[0]))
		}
	}

	title = text.Normalize(title)

	if text.WordCount(title) <= 4 {
		reduction := text.WordCount(stripSeparators(origTitle)) - text.WordCount(title)
		if !hierarchicalFound || reduction > 1 {
			title = origTitle
		}
	}

	return title
}

func resolveColonTitle(root *html.Node, title, origTitle string) string {
	for _, h := range findAll(root, "H1", "H2") {
		if strings.TrimSpace(dom.TextContent(h)) == title {
			return title
		}
	}

	lastColon := strings.LastIndex(title, ":")
	if lastColon < 0 {
		return title
	}
	candidate := strings.TrimSpace(title[lastColon+1:])
	if text.WordCount(candidate) < 3 {
		firstColon := strings.Index(title, ":")
		before := strings.TrimSpace(title[:firstColon])
		candidate = strings.TrimSpace(title[firstColon+1:])
		if text.WordCount(before) > 5 {
			return origTitle
		}
	}
	return candidate
}

func findLastSeparator(s string) (sep string, idx int, ok bool) {
	best := -1
	for _, c := range separators {
		if i := strings.LastIndex(s, c); i > best {
			best = i
			sep = c
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return sep, best, true
}

func findFirstSeparator(s string) (sep string, idx int, ok bool) {
	best := -1
	for _, c := range separators {
		if i := strings.Index(s, c); i >= 0 && (best < 0 || i < best) {
			best = i
			sep = c
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return sep, best, true
}

func anyHierarchicalSeparator(s string) bool {
	for sep := range hierarchicalSeparators {
		if strings.Contains(s, sep) {
			return true
		}
	}
	return false
}

func stripSeparators(s string) string {
	out := s
	for _, c := range separators {
		out = strings.ReplaceAll(out, c, " ")
	}
	return out
}
