package site

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// dateLayout is the accepted format for front matter dates and filename
// date prefixes.
const dateLayout = "2006-01-02"

// filenameDateRE matches the conventional "2015-08-12-some-title" stem.
var filenameDateRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)$`)

// recognizedKeys is the closed set of front matter fields. Anything else is
// surfaced as a warning rather than silently carried along.
var recognizedKeys = map[string]struct{}{
	"layout":   {},
	"title":    {},
	"date":     {},
	"summary":  {},
	"slug":     {},
	"series":   {},
	"tags":     {},
	"draft":    {},
	"previous": {},
	"alias_of": {},
}

// Normalize validates a parsed document and produces an immutable Document.
// Findings are returned as issues; the document is usable only when none of
// them has error severity. Required fields are layout and title. The date
// comes from front matter when present, otherwise from the filename date
// prefix: an explicit front matter date always wins over the filename, since
// the front matter is the document's own statement of record.
func Normalize(raw RawDocument) (Document, []Issue) {
	var issues []Issue
	path := raw.SourcePath

	for _, key := range sortedKeys(raw.Meta) {
		if _, ok := recognizedKeys[key]; !ok {
			issues = append(issues, warnIssue(path, ErrUnknownField, "unrecognized front matter key %q", key))
		}
	}

	layout := Layout(metaString(raw.Meta, "layout"))
	switch {
	case layout == "":
		issues = append(issues, errIssue(path, ErrMissingField, "front matter field %q is required", "layout"))
	case !layout.Valid():
		issues = append(issues, errIssue(path, ErrMissingField, "layout %q is not one of %q, %q", layout, LayoutPost, LayoutPage))
	}

	title := strings.TrimSpace(metaString(raw.Meta, "title"))
	if title == "" {
		issues = append(issues, errIssue(path, ErrMissingField, "front matter field %q is required", "title"))
	}

	stem := filenameStem(path)
	fileDate, fileSlug := splitDateStem(stem)

	date, dateIssues := normalizeDate(raw, fileDate, layout)
	issues = append(issues, dateIssues...)

	slug := metaString(raw.Meta, "slug")
	if slug == "" {
		slug = fileSlug
	}
	slug = Slugify(slug)
	if slug == "" {
		issues = append(issues, errIssue(path, ErrMissingField, "cannot derive a slug from filename %q", filepath.Base(path)))
	}

	doc := Document{
		Slug:       slug,
		Title:      title,
		Date:       date,
		Summary:    strings.TrimSpace(metaString(raw.Meta, "summary")),
		Series:     strings.TrimSpace(metaString(raw.Meta, "series")),
		Tags:       metaStrings(raw.Meta, "tags"),
		Layout:     layout,
		Draft:      metaBool(raw.Meta, "draft"),
		AliasOf:    Slugify(metaString(raw.Meta, "alias_of")),
		SourcePath: path,
		Body:       raw.Body,
	}
	if prev := strings.TrimSpace(metaString(raw.Meta, "previous")); prev != "" {
		doc.Refs = append(doc.Refs, Reference{Name: "previous", Raw: prev})
	}

	for _, i := range issues {
		if i.Severity == SeverityError {
			return Document{}, issues
		}
	}
	return doc, issues
}

// normalizeDate applies the precedence rule: front matter date first, then
// the filename prefix. A post with neither is an error because posts need a
// publication timestamp for ordering; pages may be undated.
func normalizeDate(raw RawDocument, fileDate string, layout Layout) (time.Time, []Issue) {
	path := raw.SourcePath

	if v, ok := raw.Meta["date"]; ok {
		switch d := v.(type) {
		case string:
			t, err := time.Parse(dateLayout, strings.TrimSpace(d))
			if err != nil {
				return time.Time{}, []Issue{errIssue(path, ErrInvalidDate, "date %q does not match %s", d, dateLayout)}
			}
			return t, nil
		case time.Time:
			return d.UTC(), nil
		default:
			return time.Time{}, []Issue{errIssue(path, ErrInvalidDate, "date has unsupported type %T", v)}
		}
	}

	if fileDate != "" {
		t, err := time.Parse(dateLayout, fileDate)
		if err != nil {
			return time.Time{}, []Issue{errIssue(path, ErrInvalidDate, "filename date %q does not match %s", fileDate, dateLayout)}
		}
		return t, nil
	}

	if layout == LayoutPost {
		return time.Time{}, []Issue{errIssue(path, ErrMissingField, "post has no publication date in front matter or filename")}
	}
	return time.Time{}, nil
}

// filenameStem strips the directory and markdown extension from path.
func filenameStem(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{".markdown", ".md"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// splitDateStem splits a "2015-08-12-title" stem into its date token and the
// remaining slug part. Stems without a date prefix return an empty date.
func splitDateStem(stem string) (date, slug string) {
	if m := filenameDateRE.FindStringSubmatch(stem); m != nil {
		return m[1], m[2]
	}
	return "", stem
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key]; ok {
		switch s := v.(type) {
		case string:
			return s
		case fmt.Stringer:
			return s.String()
		}
	}
	return ""
}

func metaStrings(meta map[string]any, key string) []string {
	v, ok := meta[key]
	if !ok {
		return nil
	}
	switch vals := v.(type) {
	case []any:
		var out []string
		for _, item := range vals {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, strings.ToLower(s))
				}
			}
		}
		return out
	case string:
		return FilterEmpty(strings.Split(strings.ToLower(vals), ","))
	}
	return nil
}

func metaBool(meta map[string]any, key string) bool {
	b, _ := meta[key].(bool)
	return b
}

func sortedKeys(meta map[string]any) []string {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
