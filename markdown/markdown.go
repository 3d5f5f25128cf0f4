// Package markdown renders Markdown content as templ components.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// md is the shared converter: GitHub-flavored markdown with auto heading IDs.
// Raw HTML passes through; content is trusted (it is the site author's own).
// Link and image destinations still go through SafeURL, so a pasted
// javascript: URL never reaches the output.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(
			util.Prioritized(urlSanitizer{}, 999),
		),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithUnsafe(),
	),
)

// urlSanitizer rewrites every link and image destination through SafeURL.
type urlSanitizer struct{}

func (urlSanitizer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link:
			v.Destination = []byte(SafeURL(string(v.Destination)))
		case *ast.Image:
			v.Destination = []byte(SafeURL(string(v.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := Convert(content, &buf); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Convert writes the HTML representation of content to w.
func Convert(content string, w io.Writer) error {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// SafeURL validates a URL for use as a link or image destination. Relative
// paths, fragments, and http/https/mailto/tel URLs pass through unchanged;
// anything else (javascript:, data:, scheme-less text) collapses to "".
// Escaping is left to the renderer.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}
