package site

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontMatterDelim bounds the metadata block at the top of a source file.
// The closing delimiter must appear on its own line.
const frontMatterDelim = "---"

// RawDocument is the output of parsing: the decoded front matter mapping
// plus the body as opaque text. Normalization turns it into a Document.
type RawDocument struct {
	SourcePath string
	Meta       map[string]any
	Body       string
}

// ParseDocument splits raw source text into front matter and body. The file
// must open with a "---" line; the block runs until the next "---" line.
// A missing start marker or an unterminated block is ErrMalformedDocument.
// Pure function of its input.
func ParseDocument(path string, raw []byte) (RawDocument, error) {
	text := strings.TrimPrefix(string(raw), "\ufeff")
	lines := strings.SplitAfter(text, "\n")

	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontMatterDelim {
		return RawDocument{}, fmt.Errorf("%s: %w: missing front matter start marker", path, ErrMalformedDocument)
	}

	end := -1
	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") == frontMatterDelim {
			end = i
			break
		}
		offset += len(lines[i])
	}
	if end == -1 {
		return RawDocument{}, fmt.Errorf("%s: %w: unterminated front matter block", path, ErrMalformedDocument)
	}

	block := text[len(lines[0]):offset]
	body := text[offset+len(lines[end]):]

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return RawDocument{}, fmt.Errorf("%s: %w: %v", path, ErrMalformedDocument, err)
	}

	return RawDocument{SourcePath: path, Meta: meta, Body: body}, nil
}
