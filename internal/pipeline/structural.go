package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// ErrStructuralConversion indicates the HTML-to-Markdown conversion failed.
var ErrStructuralConversion = errors.New("structural conversion failed")

// hardBreak is the Markdown hard line break: two trailing spaces and a newline.
const hardBreak = "  \n"

// RuleFlags is the subset of conversion options that changes which override
// rules get registered on the HTML-to-Markdown converter. It is comparable and
// used directly as the RuleCache key.
type RuleFlags struct {
	DropImages bool
	DropBold   bool
	DropItalic bool
	DropCode   bool
}

// Any reports whether at least one drop rule is enabled.
func (f RuleFlags) Any() bool {
	return f.DropImages || f.DropBold || f.DropItalic || f.DropCode
}

// RuleSet is an HTML-to-Markdown converter configured for one RuleFlags value.
// It is never mutated after BuildRuleSet returns and is safe for concurrent use.
type RuleSet struct {
	conv *converter.Converter
}

// BuildRuleSet creates a converter with ATX headings and fenced code blocks as
// the baseline, plus override rules for sup, sub, br and the enabled drop flags.
func BuildRuleSet(flags RuleFlags) *RuleSet {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithListEndComment(false),
			),
			table.NewTablePlugin(table.WithNewlineBehavior(table.NewlineBehaviorPreserve)),
			strikethrough.NewStrikethroughPlugin(),
			&overridePlugin{flags: flags},
		),
	)
	return &RuleSet{conv: conv}
}

// Convert converts sanitized HTML to Markdown.
func (r *RuleSet) Convert(htmlInput string) (string, error) {
	md, err := r.conv.ConvertString(htmlInput)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStructuralConversion, err)
	}
	return md, nil
}

// RuleCache memoizes rule sets by RuleFlags. At most sixteen entries exist.
// Each entry is built once and only read afterwards. The zero value is ready
// to use and safe for concurrent lookups.
type RuleCache struct {
	mu   sync.RWMutex
	sets map[RuleFlags]*RuleSet
}

// NewRuleCache creates an empty cache.
func NewRuleCache() *RuleCache {
	return &RuleCache{sets: make(map[RuleFlags]*RuleSet)}
}

// Get returns the rule set for flags, building it on first use.
func (c *RuleCache) Get(flags RuleFlags) *RuleSet {
	c.mu.RLock()
	rs, ok := c.sets[flags]
	c.mu.RUnlock()
	if ok {
		return rs
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have built it while we waited for the lock
	if rs, ok := c.sets[flags]; ok {
		return rs
	}
	if c.sets == nil {
		c.sets = make(map[RuleFlags]*RuleSet)
	}
	rs = BuildRuleSet(flags)
	c.sets[flags] = rs
	return rs
}

// HTMLToMarkdown converts sanitized HTML with the given rule set. If the
// converter fails, tags are stripped and entities decoded instead, so the
// stage never fails.
func HTMLToMarkdown(rs *RuleSet, sanitizedHTML string) string {
	if strings.TrimSpace(sanitizedHTML) == "" {
		return ""
	}
	md, err := rs.Convert(sanitizedHTML)
	if err != nil {
		return PlainText(sanitizedHTML)
	}
	return md
}

// overridePlugin registers the rules that replace the converter defaults.
// Registered early so they win over the commonmark renderers.
type overridePlugin struct {
	flags RuleFlags
}

func (p *overridePlugin) Name() string {
	return "clip2md-overrides"
}

func (p *overridePlugin) Init(conv *converter.Converter) error {
	conv.Register.RendererFor("sup", converter.TagTypeInline, wrapChildren("^"), converter.PriorityEarly)
	conv.Register.RendererFor("sub", converter.TagTypeInline, wrapChildren("~"), converter.PriorityEarly)
	conv.Register.RendererFor("br", converter.TagTypeInline, renderHardBreak, converter.PriorityEarly)

	if p.flags.DropImages {
		conv.Register.RendererFor("img", converter.TagTypeInline, renderNothing, converter.PriorityEarly)
	}
	if p.flags.DropBold {
		for _, tag := range []string{"strong", "b"} {
			conv.Register.RendererFor(tag, converter.TagTypeInline, renderChildrenOnly, converter.PriorityEarly)
		}
	}
	if p.flags.DropItalic {
		for _, tag := range []string{"em", "i"} {
			conv.Register.RendererFor(tag, converter.TagTypeInline, renderChildrenOnly, converter.PriorityEarly)
		}
	}
	if p.flags.DropCode {
		conv.Register.RendererFor("code", converter.TagTypeInline, renderChildrenOnly, converter.PriorityEarly)
		conv.Register.RendererFor("pre", converter.TagTypeBlock, renderPlainBlock, converter.PriorityEarly)
	}
	return nil
}

// wrapChildren renders the node content between delim markers.
// Empty content emits nothing.
func wrapChildren(delim string) converter.HandleRenderFunc {
	return func(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
		var buf bytes.Buffer
		ctx.RenderChildNodes(ctx, &buf, n)

		content := bytes.TrimSpace(buf.Bytes())
		if len(content) == 0 {
			return converter.RenderSuccess
		}
		_, _ = w.WriteString(delim)
		_, _ = w.Write(content)
		_, _ = w.WriteString(delim)
		return converter.RenderSuccess
	}
}

func renderHardBreak(_ converter.Context, w converter.Writer, _ *html.Node) converter.RenderStatus {
	_, _ = w.WriteString(hardBreak)
	return converter.RenderSuccess
}

func renderNothing(_ converter.Context, _ converter.Writer, _ *html.Node) converter.RenderStatus {
	return converter.RenderSuccess
}

func renderChildrenOnly(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	ctx.RenderChildNodes(ctx, w, n)
	return converter.RenderSuccess
}

// renderPlainBlock emits the raw text of a preformatted block as its own
// paragraph, without fences.
func renderPlainBlock(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	text := strings.Trim(nodeText(n), "\n")
	if strings.TrimSpace(text) == "" {
		return converter.RenderSuccess
	}
	_, _ = w.WriteString("\n\n")
	_, _ = w.Write(ctx.EscapeContent([]byte(text)))
	_, _ = w.WriteString("\n\n")
	return converter.RenderSuccess
}

// nodeText concatenates the text nodes below n. A <br> counts as a newline.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case c.Type == html.TextNode:
				sb.WriteString(c.Data)
			case c.Type == html.ElementNode && c.Data == "br":
				sb.WriteByte('\n')
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}
