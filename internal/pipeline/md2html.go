package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLRender indicates Markdown to HTML rendering failed.
var ErrHTMLRender = errors.New("HTML rendering failed")

// Precompiled regex patterns for presentation attribute removal.
var (
	openingTag        = regexp.MustCompile(`<[A-Za-z][A-Za-z0-9:-]*(?:\s[^<>]*)?/?>`)
	presentationAttrs = regexp.MustCompile(`(?i)\s(?:style|class|id|data-[a-z0-9_.:-]+)\s*=\s*(?:"[^"]*"|'[^']*')`)
)

// GoldmarkRenderer renders Markdown to an HTML fragment using goldmark.
// Strikethrough is left out so "~x~" subscripts stay literal.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a GoldmarkRenderer with tables, autolinks,
// task lists and footnotes.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,    // | a | b |
			extension.Linkify,  // bare URLs
			extension.TaskList, // - [x] done
			extension.Footnote, // [^1] footnotes
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Newlines inside a paragraph become <br />
			html.WithXHTML(),     // Self-closing tags
			// WithUnsafe is not used: raw HTML in pasted Markdown is omitted.
		),
	)
	return &GoldmarkRenderer{md: md}
}

// Render converts Markdown to clean HTML: the fragment goldmark produces,
// with style, class, id and data-* attributes removed.
func (r *GoldmarkRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	return StripPresentationAttrs(strings.TrimSpace(buf.String())), nil
}

// StripPresentationAttrs removes style, class, id and data-* attributes from
// every opening tag. Tag names and content are preserved.
func StripPresentationAttrs(htmlInput string) string {
	return openingTag.ReplaceAllStringFunc(htmlInput, func(tag string) string {
		return presentationAttrs.ReplaceAllString(tag, "")
	})
}
