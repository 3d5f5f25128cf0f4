package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
// The feed and sitemap writers use it too, so absolute URLs are built the
// same way everywhere.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// RelatedDocs returns docs that share at least one tag with current.
func RelatedDocs(current Doc, docs []Doc) []Doc {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Doc
	for _, d := range docs {
		if d.Slug == current.Slug {
			continue
		}
		for _, t := range d.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, d)
				break
			}
		}
	}
	return related
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema.
func WebsiteJsonLD(site Site) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         BuildURL(site.URL),
		"description": site.Description,
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(doc Doc, site Site) string {
	postURL := BuildURL(site.URL, doc.Link)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    doc.Title,
		"description": doc.Summary,
		"url":         postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if doc.ISODate != "" {
		data["datePublished"] = doc.ISODate
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	if len(doc.Tags) > 0 {
		data["keywords"] = strings.Join(doc.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
