package clip2md

import (
	"fmt"
	"strings"

	"github.com/alnah/go-clip2md/internal/pipeline"
)

// SourceKind identifies where pasted content came from.
type SourceKind string

// Source kind constants.
const (
	SourceHTML SourceKind = "HTML"
	SourcePDF  SourceKind = "PDF"
	SourceText SourceKind = "TEXT" // plain clipboard text, routed per entry
)

// ParseSourceKind parses a case-insensitive source kind name.
func ParseSourceKind(s string) (SourceKind, error) {
	kind := SourceKind(strings.ToUpper(strings.TrimSpace(s)))
	switch kind {
	case SourceHTML, SourcePDF, SourceText:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSourceKind, s)
}

// OutputMode selects the final rendering.
type OutputMode string

// Output mode constants.
const (
	OutputMarkdown OutputMode = "markdown"
	OutputClean    OutputMode = "clean" // HTML without presentation attributes
)

// ParseOutputMode parses a case-insensitive output mode. Empty means markdown.
func ParseOutputMode(s string) (OutputMode, error) {
	mode := OutputMode(strings.ToLower(strings.TrimSpace(s)))
	switch mode {
	case "":
		return OutputMarkdown, nil
	case OutputMarkdown, OutputClean:
		return mode, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOutputMode, s)
}

// Options controls a conversion. It is passed by value and never mutated
// by the pipeline.
type Options struct {
	DropImages           bool
	DropBold             bool
	DropItalic           bool
	DropCode             bool
	NormalizePunctuation bool
	PandocHeadings       bool // setext underlines for h1/h2
	HeadingsToBold       bool
	DePDF                bool
	Output               OutputMode
}

// DefaultOptions returns the options a fresh session starts with.
func DefaultOptions() Options {
	return Options{
		DropImages:           true,
		NormalizePunctuation: true,
		Output:               OutputMarkdown,
	}
}

// Validate checks the output mode. Empty is accepted as markdown.
func (o Options) Validate() error {
	switch o.Output {
	case "", OutputMarkdown, OutputClean:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidOutputMode, o.Output)
}

// active reports whether any option asks for work beyond plain conversion.
func (o Options) active() bool {
	return o.ruleFlags().Any() ||
		o.NormalizePunctuation || o.PandocHeadings || o.HeadingsToBold ||
		o.DePDF || o.Output == OutputClean
}

// ruleFlags returns the subset of options that changes structural rules.
func (o Options) ruleFlags() pipeline.RuleFlags {
	return pipeline.RuleFlags{
		DropImages: o.DropImages,
		DropBold:   o.DropBold,
		DropItalic: o.DropItalic,
		DropCode:   o.DropCode,
	}
}

// RawEntry is one paste as captured from the clipboard.
type RawEntry struct {
	ID      string
	Kind    SourceKind
	Content string
}

// Input holds the content of a single conversion.
type Input struct {
	Content string
	Kind    SourceKind // HTML or PDF
	Options Options
}

// Renderer turns Markdown into an HTML fragment for clean output.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithRenderer replaces the Markdown to HTML renderer used in clean mode.
// Panics if r is nil (programmer error).
func WithRenderer(r Renderer) Option {
	if r == nil {
		panic("clip2md: WithRenderer renderer must not be nil")
	}
	return func(c *Converter) {
		c.renderer = r
	}
}
