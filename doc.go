// Package readability extracts the main article from an HTML document,
// transforming markup cluttered with navigation, ads, and boilerplate
// into a clean title, content, and plain-text body.
//
// The package never fetches anything itself: callers supply HTML they
// already have, from a file, a pre-fetched response body, or anywhere
// else. Parse accepts HTML already decoded to a Go string; ParseBytes
// additionally sniffs the document's character encoding.
//
// # Basic Usage
//
//	result, err := readability.Parse(htmlString)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Title)
//	fmt.Println(result.Content)
//
// # Configuration
//
// Parse and ParseBytes accept functional options:
//
//	result, err := readability.Parse(htmlString,
//	    readability.WithCharThreshold(250),
//	    readability.WithBaseURL("https://example.com/article"),
//	    readability.WithKeepClasses(false),
//	)
//
// WithBaseURL supplies the resolution base for relative links and
// images; without it, relative URIs are left untouched.
//
// # Parsing Raw Bytes
//
// ParseBytes decodes the document before extraction, using a declared
// <meta charset> when present and falling back to encoding detection:
//
//	result, err := readability.ParseBytes(rawBytes, readability.WithBaseURL(pageURL))
//
// # Error Handling
//
// Errors are typed for programmatic handling:
//
//	result, err := readability.Parse(htmlString)
//	if err != nil {
//	    var rerr *readability.Error
//	    if errors.As(err, &rerr) {
//	        switch rerr.Kind {
//	        case readability.ErrInputTooLarge:
//	            // document exceeded WithMaxElemsToParse
//	        case readability.ErrExtractionFailed:
//	            // no usable article content found
//	        }
//	    }
//	}
//
// # Concurrency
//
// Parse and ParseBytes hold no package-level state and are safe to
// call concurrently from multiple goroutines; each call operates on
// its own parsed document tree.
package readability
