// Package site builds the document collection behind a personal static
// website: markdown files with YAML front matter are parsed, normalized,
// cross-referenced, and assembled into an ordered, queryable collection that
// the rendering layer turns into HTML pages, a feed, and a sitemap.
package site

import "time"

// Layout selects which page template renders a document.
type Layout string

const (
	// LayoutPost is a dated blog post, listed on the home page.
	LayoutPost Layout = "post"
	// LayoutPage is a standalone page such as "about".
	LayoutPage Layout = "page"
)

// Valid reports whether l is a recognized layout.
func (l Layout) Valid() bool {
	return l == LayoutPost || l == LayoutPage
}

// Document is the core content type. It is built once per build from a
// source file and never mutated afterwards; reference targets are filled in
// during resolution, before the collection is handed to consumers.
type Document struct {
	Slug       string
	Title      string
	Date       time.Time // zero for undated pages
	Summary    string
	Series     string
	Tags       []string
	Layout     Layout
	Draft      bool
	AliasOf    string // slug this document redirects to, if any
	SourcePath string
	Body       string // raw markdown body
	Refs       []Reference
}

// Link returns the site-relative URL path for the document.
func (d Document) Link() string {
	if d.Layout == LayoutPost {
		return "/blog/" + d.Slug + "/"
	}
	return "/" + d.Slug + "/"
}

// Reference is a directed edge from one document to another, keyed by a
// symbolic name. Target is empty until resolution succeeds.
type Reference struct {
	Name   string // "post_url", "previous"
	Raw    string // the reference as written in the source
	Target string // resolved slug
}
