package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Load walks dir for markdown documents and parses and normalizes them.
// Documents are independent, so the per-file work runs concurrently with no
// shared mutable state; results are merged only after every worker is done.
// Content problems become issues and never abort sibling documents; only
// filesystem failures return an error.
func Load(ctx context.Context, dir string) ([]Document, []Issue, error) {
	paths, err := contentPaths(dir)
	if err != nil {
		return nil, nil, err
	}

	type result struct {
		doc    Document
		issues []Issue
		ok     bool
	}
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			parsed, err := ParseDocument(path, raw)
			if err != nil {
				results[i] = result{issues: []Issue{errIssue(path, ErrMalformedDocument, "%v", err)}}
				return nil
			}
			doc, issues := Normalize(parsed)
			results[i] = result{doc: doc, issues: issues, ok: doc.Slug != ""}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var docs []Document
	var issues []Issue
	for _, r := range results {
		issues = append(issues, r.issues...)
		if r.ok {
			docs = append(docs, r.doc)
		}
	}
	return docs, issues, nil
}

// contentPaths collects the markdown files under dir in walk order, skipping
// hidden and underscore-prefixed directories.
func contentPaths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".md", ".markdown":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	return paths, nil
}
