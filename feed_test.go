package site

import (
	"strings"
	"testing"
)

func TestWriteFeed(t *testing.T) {
	cfg := SiteConfig{Name: "Test Blog", URL: "https://example.com", Description: "Testing"}
	posts := []Document{
		{Slug: "newer", Title: "Newer & Better", Date: day("2015-08-18"), Summary: "s2", Layout: LayoutPost},
		{Slug: "older", Title: "Older", Date: day("2015-08-12"), Summary: "s1", Layout: LayoutPost},
	}

	var b strings.Builder
	if err := WriteFeed(&b, cfg, posts); err != nil {
		t.Fatalf("WriteFeed failed: %v", err)
	}
	got := b.String()

	if !strings.Contains(got, `<rss version="2.0">`) {
		t.Errorf("feed = %q, want rss 2.0 envelope", got)
	}
	if !strings.Contains(got, "<title>Test Blog</title>") {
		t.Errorf("feed missing channel title: %q", got)
	}
	if !strings.Contains(got, "<link>https://example.com/blog/newer/</link>") {
		t.Errorf("feed missing post link: %q", got)
	}
	if !strings.Contains(got, "Newer &amp; Better") {
		t.Errorf("feed should XML-escape titles: %q", got)
	}
	if strings.Index(got, "newer") > strings.Index(got, "older") {
		t.Errorf("feed items should keep newest-first order")
	}
	if !strings.Contains(got, "Tue, 18 Aug 2015") {
		t.Errorf("feed pubDate should be RFC1123Z: %q", got)
	}
}

func TestWriteSitemap(t *testing.T) {
	cfg := SiteConfig{URL: "https://example.com"}
	docs := []Document{
		{Slug: "post-a", Title: "A", Date: day("2015-08-12"), Layout: LayoutPost},
		{Slug: "about", Title: "About", Layout: LayoutPage},
	}

	var b strings.Builder
	if err := WriteSitemap(&b, cfg, docs); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}
	got := b.String()

	if !strings.Contains(got, "<loc>https://example.com</loc>") {
		t.Errorf("sitemap missing home URL: %q", got)
	}
	if !strings.Contains(got, "<loc>https://example.com/blog/post-a/</loc>") {
		t.Errorf("sitemap missing post URL: %q", got)
	}
	if !strings.Contains(got, "<lastmod>2015-08-12</lastmod>") {
		t.Errorf("sitemap missing lastmod for dated post: %q", got)
	}
	if !strings.Contains(got, "<loc>https://example.com/about/</loc>") {
		t.Errorf("sitemap missing page URL: %q", got)
	}
}
