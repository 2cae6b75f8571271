package readability

import (
	"bytes"
	"log"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/language"

	"github.com/clarity-reader/readability/internal/dom"
	"github.com/clarity-reader/readability/internal/metadata"
	"github.com/clarity-reader/readability/internal/postprocess"
	"github.com/clarity-reader/readability/internal/prepare"
	"github.com/clarity-reader/readability/internal/preprocess"
	"github.com/clarity-reader/readability/internal/retry"
	"github.com/clarity-reader/readability/internal/text"
)

// Parse implements spec.md C12: the public orchestrator. htmlInput is a
// full HTML document. Parse mutates its own internal copy of the parsed
// tree only; it never touches caller state.
func Parse(htmlInput string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	root, err := html.Parse(strings.NewReader(htmlInput))
	if err != nil {
		return nil, &Error{Kind: ErrDOMContractViolation, Op: "Parse", Err: err}
	}

	if cfg.maxElemsToParse > 0 {
		if n := countElements(root); n > cfg.maxElemsToParse {
			return nil, &Error{Kind: ErrInputTooLarge, Op: "Parse"}
		}
	}

	body := findBody(root)
	if body == nil {
		return nil, &Error{Kind: ErrDOMContractViolation, Op: "Parse"}
	}

	// Step 2: unwrap noscript images before anything else touches scripts.
	preprocess.UnwrapNoscriptImages(root)

	// Step 3: resolve metadata while <script> tags are still present.
	meta := metadata.Extract(root, cfg.disableJSONLD)
	if cfg.debug {
		log.Printf("readability: resolved metadata title=%q byline=%q siteName=%q", meta.Title, meta.Byline, meta.SiteName)
	}

	// Step 4: remove scripts and run the rest of pre-processing.
	preprocess.StripScriptsAndNoscript(root)
	preprocess.StripStyles(root)
	preprocess.ReplaceBrRuns(root)
	preprocess.WidenFontTags(root)

	// Step 5: retry controller runs C5..C9.
	byline := &meta.Byline
	prepareCfg := prepare.Config{AllowedVideoRegex: cfg.allowedVideoRegex, LinkDensityModifier: cfg.linkDensityModifier}
	result := retry.Run(body, byline, cfg.charThreshold, cfg.nbTopCandidates, prepareCfg)
	if cfg.debug {
		log.Printf("readability: retry controller finished after %d attempt(s)", result.Attempts)
	}
	if result.Container == nil {
		return nil, &Error{Kind: ErrExtractionFailed, Op: "Parse"}
	}

	// Assemble already ran inside the retry loop; the returned container
	// is the final articleContent.
	articleContent := result.Container

	// Step 6: title, with metadata's own C4.2 fallback already applied.
	title := meta.Title

	// Step 7: post-process.
	base, docURI := resolveDocumentURIs(cfg.baseURL)
	postprocess.Run(articleContent, base, docURI, cfg.classesToPreserve, cfg.keepClasses)

	// Step 8: plain text.
	textContent := text.Normalize(dom.InnerText(articleContent))

	// Step 9: lang/dir.
	htmlEl := findHTML(root)
	lang := dom.Attr(htmlEl, "lang")
	dir := resolveDir(dom.Attr(htmlEl, "dir"), lang)

	serialize := defaultSerializer
	if cfg.serializer != nil {
		serialize = cfg.serializer
	}
	content, err := serialize(articleContent)
	if err != nil {
		return nil, &Error{Kind: ErrDOMContractViolation, Op: "Parse", Err: err}
	}

	return &Result{
		Title:         title,
		Content:       content,
		TextContent:   textContent,
		Length:        len([]rune(textContent)),
		Excerpt:       meta.Excerpt,
		Byline:        meta.Byline,
		Dir:           dir,
		SiteName:      meta.SiteName,
		Lang:          lang,
		PublishedTime: meta.PublishedTime,
	}, nil
}

// ParseBytes decodes raw document bytes, sniffing the charset when no
// encoding is supplied, and delegates to Parse.
func ParseBytes(raw []byte, opts ...Option) (*Result, error) {
	return Parse(decodeHTML(raw), opts...)
}

func countElements(n *html.Node) int {
	count := 0
	for _, c := range dom.Children(n) {
		count += 1 + countElements(c)
	}
	return count
}

func findBody(root *html.Node) *html.Node {
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if body != nil {
			return
		}
		if dom.TagName(n) == "BODY" {
			body = n
			return
		}
		for _, c := range dom.Children(n) {
			walk(c)
		}
	}
	walk(root)
	return body
}

func findHTML(root *html.Node) *html.Node {
	for _, c := range dom.Children(root) {
		if dom.TagName(c) == "HTML" {
			return c
		}
	}
	return root
}

func resolveDocumentURIs(raw string) (*url.URL, *url.URL) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, nil
	}
	return u, u
}

// rtlScripts are the ISO 15924 script codes golang.org/x/text/language
// reports for the world's right-to-left writing systems.
var rtlScripts = map[string]bool{
	"Arab": true, "Hebr": true, "Syrc": true, "Thaa": true,
	"Nkoo": true, "Samr": true, "Mand": true, "Adlm": true,
}

func resolveDir(attr, lang string) string {
	switch strings.ToLower(strings.TrimSpace(attr)) {
	case "rtl":
		return "rtl"
	case "ltr":
		return "ltr"
	}
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return "rtl"
	}
	return "ltr"
}

// defaultSerializer renders articleContent's children (not the wrapping
// container element itself) back to an HTML string via
// golang.org/x/net/html. Callers needing a different output shape
// (sanitized HTML, Markdown, plain DOM-to-string via another library)
// supply their own via WithSerializer.
func defaultSerializer(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for _, c := range dom.ChildNodes(n) {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
