package site

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/a-h/templ"

	"github.com/richeterre/richeterre.github.io/views"
)

// BuildResult carries the assembled collection and the aggregated report of
// every issue found during the run.
type BuildResult struct {
	Collection *Collection
	Report     *BuildReport
}

// Check runs the full pipeline — load, assemble, resolve — without writing
// any artifacts. All content problems end up in the report; the returned
// error covers only environmental failures (unreadable directories, I/O).
func Check(ctx context.Context, cfg SiteConfig) (*BuildResult, error) {
	cfg.setDefaults()
	return runPipeline(ctx, cfg)
}

// Build runs the pipeline and, when the report is clean of errors, renders
// the site into cfg.OutputDir and publishes the collection to the store.
// When the report has errors nothing is written: a build completes or fails
// as a whole.
func Build(ctx context.Context, cfg SiteConfig) (*BuildResult, error) {
	cfg.setDefaults()
	res, err := runPipeline(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if res.Report.HasErrors() {
		return res, nil
	}

	if err := writeSite(ctx, cfg, res.Collection); err != nil {
		return nil, fmt.Errorf("write site: %w", err)
	}

	store, err := NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer store.Close()
	if err := store.Publish(expandedDocs(res.Collection)); err != nil {
		return nil, fmt.Errorf("publish collection: %w", err)
	}

	log.Printf("built %d documents into %s", res.Collection.Len(), cfg.OutputDir)
	return res, nil
}

func runPipeline(ctx context.Context, cfg SiteConfig) (*BuildResult, error) {
	docs, issues, err := Load(ctx, cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	report := &BuildReport{}
	report.Add(issues...)

	coll, assembleIssues := Assemble(docs)
	report.Add(assembleIssues...)
	report.Add(ResolveReferences(coll)...)

	return &BuildResult{Collection: coll, Report: report}, nil
}

// writeSite renders every non-draft document, the home page, the feed, and
// the sitemap into a freshly recreated output directory, then copies static
// assets over.
func writeSite(ctx context.Context, cfg SiteConfig, c *Collection) error {
	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	site := viewSite(cfg)
	public := publicDocs(c)
	posts := make([]Document, 0, len(public))
	for _, d := range public {
		if d.Layout == LayoutPost {
			posts = append(posts, d)
		}
	}

	postViews := make([]views.Doc, len(posts))
	for i, p := range posts {
		postViews[i] = viewDoc(c, p)
	}
	tagSet := map[string]struct{}{}
	for _, p := range posts {
		for _, t := range p.Tags {
			tagSet[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	if err := renderToFile(ctx, filepath.Join(cfg.OutputDir, "index.html"),
		views.Home(site, postViews, "", tags)); err != nil {
		return err
	}

	for i, p := range posts {
		var prev, next *views.Doc
		if i+1 < len(posts) {
			prev = &postViews[i+1]
		}
		if i > 0 {
			next = &postViews[i-1]
		}
		related := views.RelatedDocs(postViews[i], postViews)
		path := filepath.Join(cfg.OutputDir, "blog", p.Slug, "index.html")
		if err := renderToFile(ctx, path, views.Post(site, postViews[i], prev, next, related)); err != nil {
			return err
		}
	}

	for _, p := range public {
		if p.Layout != LayoutPage {
			continue
		}
		path := filepath.Join(cfg.OutputDir, p.Slug, "index.html")
		if err := renderToFile(ctx, path, views.Page(site, viewDoc(c, p))); err != nil {
			return err
		}
	}

	if err := writeXML(filepath.Join(cfg.OutputDir, "feed.xml"), func(f *os.File) error {
		return WriteFeed(f, cfg, posts)
	}); err != nil {
		return err
	}
	if err := writeXML(filepath.Join(cfg.OutputDir, "sitemap.xml"), func(f *os.File) error {
		return WriteSitemap(f, cfg, public)
	}); err != nil {
		return err
	}

	return CopyStaticAssets(cfg.StaticDir, cfg.OutputDir)
}

// publicDocs filters drafts out of the collection sequence.
func publicDocs(c *Collection) []Document {
	var out []Document
	for _, d := range c.Documents() {
		if !d.Draft {
			out = append(out, d)
		}
	}
	return out
}

// expandedDocs returns every document with its references expanded, ready
// for the publish store. Drafts are included; the preview server decides
// their visibility.
func expandedDocs(c *Collection) []Document {
	docs := make([]Document, 0, c.Len())
	for _, d := range c.Documents() {
		d.Body = ExpandBody(c, d)
		docs = append(docs, d)
	}
	return docs
}

// viewSite converts build configuration into the view model.
func viewSite(cfg SiteConfig) views.Site {
	return views.Site{
		Name:        cfg.Name,
		URL:         cfg.URL,
		Description: cfg.Description,
		Author:      cfg.Author,
	}
}

// viewDoc converts a document into its view model, expanding references.
func viewDoc(c *Collection, d Document) views.Doc {
	v := views.Doc{
		Title:   d.Title,
		Slug:    d.Slug,
		Link:    d.Link(),
		Summary: d.Summary,
		Series:  d.Series,
		Tags:    d.Tags,
		Body:    ExpandBody(c, d),
		Draft:   d.Draft,
	}
	if !d.Date.IsZero() {
		v.Date = d.Date.Format("Jan 2, 2006")
		v.ISODate = d.Date.Format(dateLayout)
	}
	return v
}

// renderToFile renders a templ component into path, creating parent
// directories as needed.
func renderToFile(ctx context.Context, path string, cmp templ.Component) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := cmp.Render(ctx, f); err != nil {
		return err
	}
	return f.Close()
}

func writeXML(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}
