package metadata

import (
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// normalizeDate parses raw into RFC 3339 when recognizable, falling back
// to the original (trimmed) string otherwise — published-time parsing is
// a heuristic, not a structural guarantee, so a parse failure is silent.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC().Format(time.RFC3339)
	}

	cfg := &dateparser.Configuration{CurrentTime: time.Now(), StrictParsing: false}
	if parsed, err := dateparser.Parse(cfg, raw); err == nil {
		return parsed.Time.UTC().Format(time.RFC3339)
	}

	return raw
}
