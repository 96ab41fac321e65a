package clip2md

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-clip2md/internal/pipeline"
)

// Compile-time interface implementation check.
var _ Renderer = (*pipeline.GoldmarkRenderer)(nil)

// Converter runs the clipboard to Markdown pipeline.
// It is safe for concurrent use: the only shared state is the rule-set
// cache, whose entries are read-only once built.
type Converter struct {
	rules    *pipeline.RuleCache
	renderer Renderer
}

// NewConverter creates a Converter with the goldmark renderer.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		rules:    pipeline.NewRuleCache(),
		renderer: pipeline.NewGoldmarkRenderer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultConverter backs the package-level Convert.
var defaultConverter = NewConverter()

// Convert converts one paste and never fails. An unknown kind is treated as
// HTML and an unknown output mode as markdown.
func Convert(raw string, kind SourceKind, opts Options) string {
	if kind != SourcePDF {
		kind = SourceHTML
	}
	if opts.Validate() != nil {
		opts.Output = OutputMarkdown
	}

	out, err := defaultConverter.Convert(context.Background(), Input{
		Content: raw,
		Kind:    kind,
		Options: opts,
	})
	if err != nil {
		return strings.TrimSpace(pipeline.ScrubControlChars(raw))
	}
	return out
}

// Convert runs the pipeline for input.Kind. The context is checked between
// stages. Recovers from internal panics to prevent crashes from propagating
// to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return "", err
	}

	if input.Kind == SourcePDF {
		return c.convertPDF(ctx, input.Content, input.Options)
	}
	return c.convertHTML(ctx, input.Content, input.Options)
}

// stage is one string to string pipeline step.
type stage func(string) string

// runStages applies stages in order, stopping if ctx is done.
func runStages(ctx context.Context, content string, stages []stage) (string, error) {
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		content = st(content)
	}
	return content, nil
}

// convertHTML runs the HTML path.
func (c *Converter) convertHTML(ctx context.Context, raw string, opts Options) (string, error) {
	if out, ok := pipeline.FastPath(raw, opts.active()); ok {
		return out, nil
	}

	sanitized := pipeline.Sanitize(raw)
	rules := c.rules.Get(opts.ruleFlags())

	stages := []stage{
		func(string) string { return pipeline.HTMLToMarkdown(rules, sanitized) },
		func(md string) string {
			if pipeline.HasHeadingTags(sanitized) {
				return pipeline.PreferOriginalHeading(sanitized, md)
			}
			return pipeline.EnsureNumberedHeadingParagraphBreak(md)
		},
	}
	if opts.NormalizePunctuation {
		stages = append(stages, pipeline.NormalizePunctuation)
	}
	stages = append(stages, pipeline.Normalize)
	if opts.DePDF {
		// The structural converter folds soft line breaks into spaces, so
		// split words are rejoined on the same line as well.
		stages = append(stages, pipeline.DePDF, pipeline.RejoinDanglingHyphens)
	}
	stages = append(stages, headingStages(opts)...)
	stages = append(stages, pipeline.Tidy)

	md, err := runStages(ctx, sanitized, stages)
	if err != nil {
		return "", err
	}
	if opts.Output == OutputClean {
		md = c.renderClean(md)
	}
	return pipeline.ScrubControlChars(md), nil
}

// convertPDF runs the PDF path. Style options apply at the Markdown level
// since there is no markup left to drop.
func (c *Converter) convertPDF(ctx context.Context, raw string, opts Options) (string, error) {
	stages := []stage{pipeline.DePDF}
	if opts.NormalizePunctuation {
		stages = append(stages, pipeline.NormalizePunctuation)
	}
	stages = append(stages, pipeline.Normalize)
	stages = append(stages, headingStages(opts)...)
	if opts.DropCode {
		stages = append(stages, pipeline.StripCode)
	}
	if opts.DropItalic {
		stages = append(stages, pipeline.StripItalic)
	}
	if opts.DropBold {
		stages = append(stages, pipeline.StripBold)
	}
	stages = append(stages, pipeline.Tidy)

	text, err := runStages(ctx, raw, stages)
	if err != nil {
		return "", err
	}
	if opts.Output == OutputClean {
		text = pipeline.WrapParagraphs(text)
	}
	return pipeline.ScrubControlChars(text), nil
}

// headingStages returns the optional heading rewrites.
func headingStages(opts Options) []stage {
	var stages []stage
	if opts.PandocHeadings {
		stages = append(stages, pipeline.ToSetextHeadings)
	}
	if opts.HeadingsToBold {
		stages = append(stages, pipeline.HeadingsToBold)
	}
	return stages
}

// renderClean renders Markdown to clean HTML. A renderer failure degrades
// to escaped paragraphs rather than failing the conversion.
func (c *Converter) renderClean(md string) string {
	out, err := c.renderer.Render(md)
	if err != nil {
		return pipeline.WrapParagraphs(md)
	}
	return pipeline.StripPresentationAttrs(out)
}

// validateInput checks the source kind and options.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI input is validated earlier, at flag and config parsing.
func validateInput(input Input) error {
	switch input.Kind {
	case SourceHTML, SourcePDF:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSourceKind, input.Kind)
	}
	return input.Options.Validate()
}
