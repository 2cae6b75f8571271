// Package scoring is the heart of the pipeline: candidate traversal
// (spec.md C5), the scoring engine (C6), and top-candidate refinement
// (C7). Regex constants here are adapted from the teacher's
// internal/utils/dom/constants.go weighting tables, retuned to the exact
// patterns spec.md §4.4–§4.6 specifies.
package scoring

import "regexp"

// unlikelyCandidatesRe and okMatchRe implement spec.md §4.4 step 3: an
// element is an unlikely candidate when its class+id matches the former
// but not the latter.
var unlikelyCandidatesRe = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)
var okMatchRe = regexp.MustCompile(`(?i)and|article|body|column|content|main|mathjax|shadow`)

// unlikelyRolesRe lists the ARIA roles spec.md §4.4 step 3 treats as
// unlikely-candidate signals regardless of class/id.
var unlikelyRolesRe = regexp.MustCompile(`(?i)^(menu|menubar|complementary|navigation|alert|alertdialog|dialog)$`)

// bylineRe detects byline-bearing elements during traversal (spec.md
// §4.4 step 2).
var bylineRe = regexp.MustCompile(`(?i)byline|author|dateline|writtenby|p-author`)

// positiveWeightRe and negativeWeightRe implement the class/id weight
// table of spec.md §4.6.
var positiveWeightRe = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)
var negativeWeightRe = regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|footer|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|widget`)

// divToPBlockTags (spec.md §4.4 step 6) are the child-block elements
// whose presence keeps a DIV from being retagged to <p>.
var divToPBlockTags = map[string]bool{
	"BLOCKQUOTE": true, "DL": true, "DIV": true, "IMG": true,
	"OL": true, "P": true, "PRE": true, "TABLE": true, "UL": true,
}

// scorableTags (spec.md §4.4 step 5) are enqueued for scoring as-is.
var scorableTags = map[string]bool{
	"SECTION": true, "H2": true, "H3": true, "H4": true, "H5": true,
	"H6": true, "P": true, "TD": true, "PRE": true,
}

// baseScoreByTag implements the per-tag base score table of spec.md
// §4.5.
var baseScoreByTag = map[string]float64{
	"DIV":        5,
	"PRE":        3,
	"TD":         3,
	"BLOCKQUOTE": 3,
	"ADDRESS":    -3,
	"OL":         -3,
	"UL":         -3,
	"DL":         -3,
	"DD":         -3,
	"DT":         -3,
	"LI":         -3,
	"FORM":       -3,
	"H1":         -5,
	"H2":         -5,
	"H3":         -5,
	"H4":         -5,
	"H5":         -5,
	"H6":         -5,
	"TH":         -5,
}
