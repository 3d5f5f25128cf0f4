package views

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/richeterre/richeterre.github.io/markdown"
)

// component wraps an HTML-producing function as a templ.Component.
func component(fn func(w *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string { return html.EscapeString(s) }

// Layout is the page shell shared by every view.
func Layout(site Site, meta PageMeta, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var head strings.Builder
		head.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"/>")
		head.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		head.WriteString("<title>" + esc(meta.Title) + "</title>")
		if meta.Description != "" {
			head.WriteString("<meta name=\"description\" content=\"" + esc(meta.Description) + "\"/>")
		}
		if meta.URL != "" {
			head.WriteString("<link rel=\"canonical\" href=\"" + esc(meta.URL) + "\"/>")
			head.WriteString("<meta property=\"og:url\" content=\"" + esc(meta.URL) + "\"/>")
		}
		head.WriteString("<meta property=\"og:title\" content=\"" + esc(meta.Title) + "\"/>")
		if meta.OGType != "" {
			head.WriteString("<meta property=\"og:type\" content=\"" + esc(meta.OGType) + "\"/>")
		}
		head.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" title=\"" + esc(site.Name) + "\" href=\"/feed.xml\"/>")
		head.WriteString("<link rel=\"stylesheet\" href=\"/css/main.css\"/>")
		if jsonLD != "" {
			head.WriteString("<script type=\"application/ld+json\">" + jsonLD + "</script>")
		}
		head.WriteString("</head><body>")
		head.WriteString("<header class=\"site-header\"><a class=\"site-title\" href=\"/\">" + esc(site.Name) + "</a>")
		head.WriteString("<nav><a href=\"/about/\">About</a></nav></header><main>")
		if _, err := io.WriteString(w, head.String()); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		footer := "</main><footer class=\"site-footer\"><p>" + esc(site.Name)
		if site.Author != "" {
			footer += " &middot; " + esc(site.Author)
		}
		footer += "</p></footer></body></html>"
		_, err := io.WriteString(w, footer)
		return err
	})
}

// Home lists posts, newest first, optionally filtered by tag.
func Home(site Site, docs []Doc, activeTag string, tags []string) templ.Component {
	meta := PageMeta{Title: site.Name, Description: site.Description, URL: BuildURL(site.URL), OGType: "website"}
	body := component(func(b *strings.Builder) {
		b.WriteString("<section class=\"intro\"><p>" + esc(site.Description) + "</p></section>")
		if len(tags) > 0 {
			b.WriteString("<nav class=\"tags\">")
			for _, t := range tags {
				cls := "tag"
				if t == activeTag {
					cls += " tag-active"
				}
				b.WriteString("<a class=\"" + cls + "\" href=\"/?tag=" + esc(t) + "\">" + esc(t) + "</a>")
			}
			b.WriteString("</nav>")
		}
		b.WriteString("<ul class=\"post-list\">")
		for _, d := range docs {
			b.WriteString("<li>")
			if d.Date != "" {
				b.WriteString("<time datetime=\"" + esc(d.ISODate) + "\">" + esc(d.Date) + "</time>")
			}
			b.WriteString("<a href=\"" + esc(d.Link) + "\">" + esc(d.Title) + "</a>")
			if d.Summary != "" {
				b.WriteString("<p class=\"summary\">" + esc(d.Summary) + "</p>")
			}
			b.WriteString("</li>")
		}
		b.WriteString("</ul>")
	})
	return Layout(site, meta, WebsiteJsonLD(site), body)
}

// Post renders a single blog post with neighbor navigation and a list of
// posts sharing a tag.
func Post(site Site, doc Doc, prev, next *Doc, related []Doc) templ.Component {
	meta := PageMeta{
		Title:       doc.Title + " | " + site.Name,
		Description: doc.Summary,
		URL:         BuildURL(site.URL, doc.Link),
		OGType:      "article",
	}
	return Layout(site, meta, BlogPostingJsonLD(doc, site), templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<article class=\"post\"><header><h1>" + esc(doc.Title) + "</h1>")
		if doc.Date != "" {
			b.WriteString("<time datetime=\"" + esc(doc.ISODate) + "\">" + esc(doc.Date) + "</time>")
		}
		if doc.Draft {
			b.WriteString("<span class=\"draft-badge\">draft</span>")
		}
		for _, t := range doc.Tags {
			b.WriteString("<a class=\"tag\" href=\"/?tag=" + esc(t) + "\">" + esc(t) + "</a>")
		}
		b.WriteString("</header><div class=\"post-body\">")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		if err := markdown.Markdown(doc.Body).Render(ctx, w); err != nil {
			return err
		}
		b.Reset()
		b.WriteString("</div><nav class=\"post-nav\">")
		if prev != nil {
			b.WriteString("<a class=\"prev\" href=\"" + esc(prev.Link) + "\">&larr; " + esc(prev.Title) + "</a>")
		}
		if next != nil {
			b.WriteString("<a class=\"next\" href=\"" + esc(next.Link) + "\">" + esc(next.Title) + " &rarr;</a>")
		}
		b.WriteString("</nav>")
		if len(related) > 0 {
			b.WriteString("<aside class=\"related\"><h2>Related posts</h2><ul>")
			for _, r := range related {
				b.WriteString("<li><a href=\"" + esc(r.Link) + "\">" + esc(r.Title) + "</a></li>")
			}
			b.WriteString("</ul></aside>")
		}
		b.WriteString("</article>")
		_, err := io.WriteString(w, b.String())
		return err
	}))
}

// Page renders a standalone page such as "about".
func Page(site Site, doc Doc) templ.Component {
	meta := PageMeta{
		Title:       doc.Title + " | " + site.Name,
		Description: doc.Summary,
		URL:         BuildURL(site.URL, doc.Link),
		OGType:      "website",
	}
	return Layout(site, meta, "", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<article class=\"page\"><h1>"+esc(doc.Title)+"</h1>"); err != nil {
			return err
		}
		if err := markdown.Markdown(doc.Body).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</article>")
		return err
	}))
}

// NotFound is the styled 404 page.
func NotFound(site Site) templ.Component {
	meta := PageMeta{Title: "Not Found | " + site.Name}
	return Layout(site, meta, "", component(func(b *strings.Builder) {
		b.WriteString("<section class=\"error\"><h1>404</h1><p>That page does not exist.</p><p><a href=\"/\">Back home</a></p></section>")
	}))
}

// ServerError is the styled 500 page.
func ServerError(site Site) templ.Component {
	meta := PageMeta{Title: "Server Error | " + site.Name}
	return Layout(site, meta, "", component(func(b *strings.Builder) {
		b.WriteString("<section class=\"error\"><h1>500</h1><p>Something went wrong.</p></section>")
	}))
}

// DraftLogin is the password form gating draft previews.
func DraftLogin(site Site, showError bool, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Drafts | " + site.Name}
	return Layout(site, meta, "", component(func(b *strings.Builder) {
		b.WriteString("<section class=\"drafts-login\"><h1>Draft preview</h1>")
		if showError {
			b.WriteString("<p class=\"error\">Wrong password.</p>")
		}
		b.WriteString("<form method=\"post\" action=\"/drafts/login/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/>")
		b.WriteString("<input type=\"password\" name=\"password\" autofocus/>")
		b.WriteString("<button type=\"submit\">Enter</button></form></section>")
	}))
}

// DraftList lists every document including drafts for a logged-in preview.
func DraftList(site Site, docs []Doc, csrfToken string) templ.Component {
	meta := PageMeta{Title: "Drafts | " + site.Name}
	return Layout(site, meta, "", component(func(b *strings.Builder) {
		b.WriteString("<section class=\"drafts\"><h1>Drafts</h1><ul class=\"post-list\">")
		for _, d := range docs {
			b.WriteString("<li>")
			if d.Draft {
				b.WriteString("<span class=\"draft-badge\">draft</span>")
			}
			b.WriteString("<a href=\"/drafts/" + esc(d.Slug) + "/\">" + esc(d.Title) + "</a></li>")
		}
		b.WriteString("</ul><form method=\"post\" action=\"/drafts/logout/\">")
		b.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/>")
		b.WriteString("<button type=\"submit\">Log out</button></form></section>")
	}))
}
