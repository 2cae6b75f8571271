package readability

import (
	"regexp"

	"golang.org/x/net/html"
)

// Serializer renders the final article-content element to an output
// string, per spec.md §6's configuration table. The default serializer
// renders the element's children back to HTML via golang.org/x/net/html.
type Serializer func(n *html.Node) (string, error)

// Option is a functional option for configuring a Parse call, per the
// configuration table of spec.md §6.
type Option func(*config)

type config struct {
	debug               bool
	maxElemsToParse     int
	nbTopCandidates     int
	charThreshold       int
	classesToPreserve   map[string]bool
	keepClasses         bool
	disableJSONLD       bool
	allowedVideoRegex   *regexp.Regexp
	linkDensityModifier float64
	baseURL             string
	serializer          Serializer
}

func defaultConfig() *config {
	return &config{
		nbTopCandidates:   5,
		charThreshold:     500,
		classesToPreserve: map[string]bool{"page": true},
	}
}

// WithDebug enables diagnostic logging during Parse.
func WithDebug(debug bool) Option {
	return func(c *config) { c.debug = debug }
}

// WithMaxElemsToParse aborts Parse with ErrInputTooLarge when the
// document's element count exceeds n. 0 (the default) disables the
// check.
func WithMaxElemsToParse(n int) Option {
	return func(c *config) { c.maxElemsToParse = n }
}

// WithNbTopCandidates sets the size of the top-N candidate list the
// scoring engine retains. Default 5.
func WithNbTopCandidates(n int) Option {
	return func(c *config) { c.nbTopCandidates = n }
}

// WithCharThreshold sets the minimum extracted-text length the retry
// controller accepts before relaxing its filters further. Default 500.
func WithCharThreshold(n int) Option {
	return func(c *config) { c.charThreshold = n }
}

// WithClassesToPreserve sets the class names post-processing keeps on
// every element instead of stripping. Default {"page"}.
func WithClassesToPreserve(classes ...string) Option {
	return func(c *config) {
		set := make(map[string]bool, len(classes))
		for _, cl := range classes {
			set[cl] = true
		}
		c.classesToPreserve = set
	}
}

// WithKeepClasses disables class-attribute stripping entirely when true.
func WithKeepClasses(keep bool) Option {
	return func(c *config) { c.keepClasses = keep }
}

// WithDisableJSONLD skips the JSON-LD metadata pass. With JSON-LD
// disabled, the title/byline/excerpt/siteName/publishedTime priority
// slots JSON-LD would have filled are simply left empty for the
// meta-tag pass to fill instead (spec.md §9).
func WithDisableJSONLD(disable bool) Option {
	return func(c *config) { c.disableJSONLD = disable }
}

// WithAllowedVideoRegex overrides the regex used to recognize embeddable
// video players that survive iframe/object/embed cleaning.
func WithAllowedVideoRegex(re *regexp.Regexp) Option {
	return func(c *config) { c.allowedVideoRegex = re }
}

// WithLinkDensityModifier applies an additive adjustment to the
// link-density thresholds used during conditional cleaning.
func WithLinkDensityModifier(delta float64) Option {
	return func(c *config) { c.linkDensityModifier = delta }
}

// WithBaseURL sets the document's baseURI/documentURI for relative-link
// resolution (spec.md §4.10). Parse never fetches this URL; it is used
// purely as a resolution base. When unset, relative URIs are left
// unresolved (per spec.md's invariant that a resolution failure
// preserves the original string).
func WithBaseURL(rawURL string) Option {
	return func(c *config) { c.baseURL = rawURL }
}

// WithSerializer overrides the function used to render articleContent to
// the Result's Content string. Unset, Parse renders the element's
// children to HTML via golang.org/x/net/html.
func WithSerializer(s Serializer) Option {
	return func(c *config) { c.serializer = s }
}
