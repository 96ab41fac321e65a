package pipeline

import (
	"html"
	"regexp"
	"strings"
)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n+`)

// ScrubControlChars removes Unicode control characters (category Cc) except
// tab, newline and carriage return.
func ScrubControlChars(s string) string {
	if !HasControlChars(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isScrubbedControl(r) {
			return -1
		}
		return r
	}, s)
}

// WrapParagraphs renders plain text as HTML: each blank-line-delimited block
// becomes an escaped <p> element. Used for clean output of PDF text, which
// carries no Markdown structure worth rendering.
func WrapParagraphs(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	blocks := paragraphBreak.Split(text, -1)
	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		paragraphs = append(paragraphs, "<p>"+html.EscapeString(block)+"</p>")
	}
	return strings.Join(paragraphs, "\n")
}
