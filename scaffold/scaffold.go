// Package scaffold stamps out starter content files from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	site "github.com/richeterre/richeterre.github.io"
)

// Templates contains the scaffold template files, in Go text/template syntax.
//
//go:embed all:templates
var Templates embed.FS

// NewPost writes a dated post stub into contentDir and returns its path.
// It refuses to overwrite an existing file.
func NewPost(contentDir, title string, now time.Time) (string, error) {
	slug := site.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from title %q", title)
	}
	date := now.Format("2006-01-02")

	tmpl, err := template.ParseFS(Templates, "templates/post.md.tmpl")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct {
		Title string
		Date  string
	}{Title: title, Date: date}); err != nil {
		return "", err
	}

	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(contentDir, fmt.Sprintf("%s-%s.md", date, slug))
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
