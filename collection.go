package site

import (
	"fmt"
	"sort"
)

// Collection is the ordered sequence of documents produced by a build, plus
// an index from slug to position. It is rebuilt wholesale each build and
// read-only afterwards; the index is always consistent with the sequence.
type Collection struct {
	docs  []Document
	index map[string]int
}

// Assemble orders documents by publication date descending (most recent
// first), tie-broken by slug ascending for determinism, and builds the slug
// index. Duplicate slugs are reported with both offending source files; the
// first occurrence (in input order) stays in the collection so the rest of
// the build can still surface further problems.
func Assemble(docs []Document) (*Collection, []Issue) {
	var issues []Issue

	seen := make(map[string]string, len(docs)) // slug -> first source path
	kept := make([]Document, 0, len(docs))
	for _, d := range docs {
		if first, dup := seen[d.Slug]; dup {
			issues = append(issues, errIssue(d.SourcePath, ErrDuplicateIdentifier,
				"slug %q already used by %s", d.Slug, first))
			continue
		}
		seen[d.Slug] = d.SourcePath
		kept = append(kept, d)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if !kept[i].Date.Equal(kept[j].Date) {
			return kept[i].Date.After(kept[j].Date)
		}
		return kept[i].Slug < kept[j].Slug
	})

	index := make(map[string]int, len(kept))
	for i, d := range kept {
		index[d.Slug] = i
	}
	return &Collection{docs: kept, index: index}, issues
}

// Len returns the number of documents in the collection.
func (c *Collection) Len() int { return len(c.docs) }

// Documents returns the ordered sequence, newest first.
func (c *Collection) Documents() []Document { return c.docs }

// ByID looks a document up by slug.
func (c *Collection) ByID(slug string) (Document, error) {
	i, ok := c.index[slug]
	if !ok {
		return Document{}, fmt.Errorf("%q: %w", slug, ErrNotFound)
	}
	return c.docs[i], nil
}

// Previous returns the next-older document relative to slug. The oldest
// document returns ok=false; there is no wrap-around.
func (c *Collection) Previous(slug string) (Document, bool, error) {
	i, ok := c.index[slug]
	if !ok {
		return Document{}, false, fmt.Errorf("%q: %w", slug, ErrNotFound)
	}
	if i+1 >= len(c.docs) {
		return Document{}, false, nil
	}
	return c.docs[i+1], true, nil
}

// Next returns the next-newer document relative to slug. The newest document
// returns ok=false; there is no wrap-around.
func (c *Collection) Next(slug string) (Document, bool, error) {
	i, ok := c.index[slug]
	if !ok {
		return Document{}, false, fmt.Errorf("%q: %w", slug, ErrNotFound)
	}
	if i == 0 {
		return Document{}, false, nil
	}
	return c.docs[i-1], true, nil
}

// ByLayout returns the documents with the given layout, in collection order.
func (c *Collection) ByLayout(l Layout) []Document {
	var out []Document
	for _, d := range c.docs {
		if d.Layout == l {
			out = append(out, d)
		}
	}
	return out
}

// Posts returns the dated posts, newest first.
func (c *Collection) Posts() []Document { return c.ByLayout(LayoutPost) }

// BySeries returns the documents sharing a series tag, oldest first, the
// order used for series-relative navigation.
func (c *Collection) BySeries(series string) []Document {
	if series == "" {
		return nil
	}
	var out []Document
	for i := len(c.docs) - 1; i >= 0; i-- {
		if c.docs[i].Series == series {
			out = append(out, c.docs[i])
		}
	}
	return out
}

// Tags returns the sorted, deduplicated tags across all documents.
func (c *Collection) Tags() []string {
	set := make(map[string]struct{})
	for _, d := range c.docs {
		for _, t := range d.Tags {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
