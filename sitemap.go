package site

import (
	"encoding/xml"
	"io"

	"github.com/richeterre/richeterre.github.io/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes the sitemap for every non-draft document plus the
// home page.
func WriteSitemap(w io.Writer, cfg SiteConfig, docs []Document) error {
	urls := []sitemapURL{
		{Loc: views.BuildURL(cfg.URL)},
	}
	for _, d := range docs {
		u := sitemapURL{Loc: views.BuildURL(cfg.URL, d.Link())}
		if !d.Date.IsZero() {
			u.LastMod = d.Date.Format(dateLayout)
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(sitemap)
}
