package readability

// Result is the record produced by a successful Parse call, per
// spec.md §6.
type Result struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	TextContent   string `json:"textContent"`
	Length        int    `json:"length"`
	Excerpt       string `json:"excerpt,omitempty"`
	Byline        string `json:"byline,omitempty"`
	Dir           string `json:"dir,omitempty"`
	SiteName      string `json:"siteName,omitempty"`
	Lang          string `json:"lang,omitempty"`
	PublishedTime string `json:"publishedTime,omitempty"`
}

// IsEmpty reports whether the result carries no meaningful content.
func (r *Result) IsEmpty() bool {
	return r.Title == "" && r.Content == ""
}

// HasByline reports whether author information was resolved.
func (r *Result) HasByline() bool {
	return r.Byline != ""
}

// HasExcerpt reports whether a description/summary was resolved.
func (r *Result) HasExcerpt() bool {
	return r.Excerpt != ""
}
