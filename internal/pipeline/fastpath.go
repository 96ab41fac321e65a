package pipeline

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Precompiled regex patterns for fast-path detection.
var (
	anyTag         = regexp.MustCompile(`<[A-Za-z/!][^>]*>`)
	markdownLike   = regexp.MustCompile("(?m)^(?:#{1,6}[ \\t]|>|```|~~~)")
	paragraphsOnly = regexp.MustCompile(`(?is)^(?:\s*<p(?:\s[^>]*)?>[^<]*</p\s*>)+\s*$`)
	tagPattern     = regexp.MustCompile(`<[^>]+>`)
)

// FastPath returns content unchanged when no conversion work is needed.
// It applies only when no option is active and the input carries no control
// characters. Two shapes qualify:
//   - text without tags that already looks like Markdown (heading,
//     blockquote or fence at a line start), returned as is
//   - a plain sequence of <p> blocks whose unwrapped text looks like
//     Markdown, returned as paragraphs separated by blank lines
//
// The second result reports whether the fast path was taken.
func FastPath(input string, active bool) (string, bool) {
	if active || input == "" || HasControlChars(input) {
		return "", false
	}

	if !anyTag.MatchString(input) {
		if markdownLike.MatchString(input) {
			return input, true
		}
		return "", false
	}

	if !paragraphsOnly.MatchString(input) {
		return "", false
	}
	text, ok := unwrapParagraphs(input)
	if !ok || !markdownLike.MatchString(text) {
		return "", false
	}
	return text, true
}

// unwrapParagraphs joins the decoded text of each <p> with a blank line.
func unwrapParagraphs(input string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", false
	}

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n\n"), true
}

// PlainText strips tags and decodes entities. Used when structural
// conversion is not possible.
func PlainText(htmlInput string) string {
	text := tagPattern.ReplaceAllString(htmlInput, "")
	return strings.TrimSpace(html.UnescapeString(text))
}

// HasControlChars reports whether s contains a control character other than
// tab, newline or carriage return.
func HasControlChars(s string) bool {
	return strings.IndexFunc(s, isScrubbedControl) >= 0
}

func isScrubbedControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}
