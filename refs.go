package site

import (
	"regexp"
	"strings"
)

// postURLRE matches body references of the form {% post_url name %}, where
// name is a post filename stem with or without its date prefix.
var postURLRE = regexp.MustCompile(`\{%\s*post_url\s+([^\s%}]+)\s*%\}`)

// seriesPreviousKeyword in a reference resolves series-relatively instead of
// naming a slug.
const seriesPreviousKeyword = "previous"

// ResolveReferences resolves the symbolic cross-references of every document
// in the collection: {% post_url %} tokens scanned from bodies plus explicit
// front matter references. Resolution is exact slug match first, then a
// series-relative fallback. Dangling references are collected and reported
// in aggregate; they never halt resolution of the remaining documents.
//
// A resolved target that is itself an alias is followed exactly one hop.
// Anything deeper fails with ErrUnsupportedReferenceDepth: reference chains
// are one-directional and bounded by design, so the resolver can never loop.
func ResolveReferences(c *Collection) []Issue {
	var issues []Issue
	for i := range c.docs {
		doc := &c.docs[i]

		refs := append(scanBodyReferences(doc.Body), doc.Refs...)
		for r := range refs {
			ref := &refs[r]
			target, issue := resolveOne(c, *doc, *ref)
			if issue != nil {
				issues = append(issues, *issue)
				continue
			}
			ref.Target = target
		}
		doc.Refs = refs
	}
	return issues
}

// resolveOne resolves a single reference for doc, returning the target slug
// or the issue describing why it could not be resolved.
func resolveOne(c *Collection, doc Document, ref Reference) (string, *Issue) {
	name := strings.TrimSpace(ref.Raw)

	// post_url references may carry the filename date prefix; the slug is
	// what remains once it is stripped.
	_, slug := splitDateStem(name)
	slug = Slugify(slug)

	if _, err := c.ByID(slug); err == nil {
		return followAlias(c, doc, ref, slug)
	}

	// Series-relative fallback: the immediate predecessor of doc among the
	// documents sharing its series, ordered by publication date.
	if name == seriesPreviousKeyword || (doc.Series != "" && name == doc.Series) {
		prev, ok := seriesPredecessor(c, doc)
		if !ok {
			issue := errIssue(doc.SourcePath, ErrDanglingReference,
				"no earlier document in series %q for reference %q", doc.Series, ref.Raw)
			return "", &issue
		}
		return followAlias(c, doc, ref, prev.Slug)
	}

	issue := errIssue(doc.SourcePath, ErrDanglingReference,
		"reference %q (%s) does not match any document", ref.Raw, ref.Name)
	return "", &issue
}

// followAlias follows at most one alias hop from slug.
func followAlias(c *Collection, doc Document, ref Reference, slug string) (string, *Issue) {
	target, err := c.ByID(slug)
	if err != nil {
		issue := errIssue(doc.SourcePath, ErrDanglingReference,
			"reference %q resolves to unknown document %q", ref.Raw, slug)
		return "", &issue
	}
	if target.AliasOf == "" {
		return slug, nil
	}

	final, err := c.ByID(target.AliasOf)
	if err != nil {
		issue := errIssue(doc.SourcePath, ErrDanglingReference,
			"alias %q points to unknown document %q", slug, target.AliasOf)
		return "", &issue
	}
	if final.AliasOf != "" {
		issue := errIssue(doc.SourcePath, ErrUnsupportedReferenceDepth,
			"reference %q chains through aliases %q and %q; only one hop is supported", ref.Raw, slug, final.Slug)
		return "", &issue
	}
	return final.Slug, nil
}

// seriesPredecessor returns the document immediately before doc in its
// series, by publication date.
func seriesPredecessor(c *Collection, doc Document) (Document, bool) {
	series := c.BySeries(doc.Series)
	for i, d := range series {
		if d.Slug == doc.Slug {
			if i == 0 {
				return Document{}, false
			}
			return series[i-1], true
		}
	}
	return Document{}, false
}

// scanBodyReferences extracts {% post_url %} tokens from a document body.
func scanBodyReferences(body string) []Reference {
	var refs []Reference
	for _, m := range postURLRE.FindAllStringSubmatch(body, -1) {
		refs = append(refs, Reference{Name: "post_url", Raw: m[1]})
	}
	return refs
}

// ExpandBody replaces resolved {% post_url %} tokens in the document body
// with the target document's URL path. Unresolved tokens are left in place;
// they have already been reported.
func ExpandBody(c *Collection, doc Document) string {
	if len(doc.Refs) == 0 {
		return doc.Body
	}
	targets := make(map[string]string)
	for _, ref := range doc.Refs {
		if ref.Name == "post_url" && ref.Target != "" {
			targets[ref.Raw] = ref.Target
		}
	}
	return postURLRE.ReplaceAllStringFunc(doc.Body, func(m string) string {
		raw := postURLRE.FindStringSubmatch(m)[1]
		slug, ok := targets[raw]
		if !ok {
			return m
		}
		target, err := c.ByID(slug)
		if err != nil {
			return m
		}
		return target.Link()
	})
}
