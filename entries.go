package clip2md

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-clip2md/internal/pipeline"
)

// entrySeparator joins converted entries.
const entrySeparator = "\n\n"

// LooksPDFLike reports whether plain text carries the soft hyphens or
// no-break spaces typical of PDF extraction.
func LooksPDFLike(text string) bool {
	return strings.ContainsAny(text, "\u00ad\u00a0")
}

// EntryFromClipboard builds a RawEntry from the clipboard variants.
// The HTML variant wins when present; otherwise the plain text is kept as
// TEXT. Returns false when both variants are blank.
func EntryFromClipboard(htmlVariant, textVariant string) (RawEntry, bool) {
	switch {
	case strings.TrimSpace(htmlVariant) != "":
		return newEntry(SourceHTML, htmlVariant), true
	case strings.TrimSpace(textVariant) != "":
		return newEntry(SourceText, textVariant), true
	}
	return RawEntry{}, false
}

func newEntry(kind SourceKind, content string) RawEntry {
	return RawEntry{ID: uuid.NewString(), Kind: kind, Content: content}
}

// ConvertEntry converts a single entry. TEXT entries go through the PDF
// path when opts.DePDF is set or the text looks PDF-extracted; other TEXT
// is returned as is, minus control characters.
func (c *Converter) ConvertEntry(ctx context.Context, entry RawEntry, opts Options) (string, error) {
	switch entry.Kind {
	case SourceText:
		if opts.DePDF || LooksPDFLike(entry.Content) {
			return c.Convert(ctx, Input{Content: entry.Content, Kind: SourcePDF, Options: opts})
		}
		return pipeline.ScrubControlChars(entry.Content), nil
	case SourcePDF:
		return c.Convert(ctx, Input{Content: entry.Content, Kind: SourcePDF, Options: opts})
	default:
		return c.Convert(ctx, Input{Content: entry.Content, Kind: SourceHTML, Options: opts})
	}
}

// ConvertEntries converts each entry independently and joins the results
// with a blank line.
func (c *Converter) ConvertEntries(ctx context.Context, entries []RawEntry, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		out, err := c.ConvertEntry(ctx, entry, opts)
		if err != nil {
			return "", fmt.Errorf("converting entry %s: %w", entry.ID, err)
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, entrySeparator), nil
}

// ConvertEntries converts entries with the default converter.
func ConvertEntries(ctx context.Context, entries []RawEntry, opts Options) (string, error) {
	return defaultConverter.ConvertEntries(ctx, entries, opts)
}

// EntryFromMarkdown renders hand-edited Markdown back to HTML and wraps it
// as a single HTML entry, so later option changes re-convert the edit
// instead of the original pastes.
func (c *Converter) EntryFromMarkdown(markdown string) (RawEntry, error) {
	if strings.TrimSpace(markdown) == "" {
		return RawEntry{}, ErrEmptyMarkdown
	}
	html, err := c.renderer.Render(markdown)
	if err != nil {
		return RawEntry{}, fmt.Errorf("rendering edited markdown: %w", err)
	}
	return newEntry(SourceHTML, html), nil
}
