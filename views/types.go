package views

// Site holds site-wide settings passed into every page component so nothing
// is hardcoded in templates.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// Doc is the view model for a rendered document. Body is markdown with all
// cross-references already expanded to concrete URLs.
type Doc struct {
	Title   string
	Slug    string
	Link    string
	Date    string // display form, empty for undated pages
	ISODate string // machine form for <time datetime>
	Summary string
	Series  string
	Tags    []string
	Body    string
	Draft   bool
}
