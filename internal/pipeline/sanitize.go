package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for document cruft found in pasted HTML.
var (
	htmlComment     = regexp.MustCompile(`(?s)<!--.*?-->`)
	headBlock       = regexp.MustCompile(`(?is)<head\b[^>]*>.*?</head\s*>`)
	styleBlock      = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	xmlBlock        = regexp.MustCompile(`(?is)<xml\b[^>]*>.*?</xml\s*>`)
	metaOrLinkTag   = regexp.MustCompile(`(?i)<(?:meta|link)\b[^>]*>`)
	pageAtRule      = regexp.MustCompile(`(?is)@page\b[^{}]*\{[^}]*\}`)
	inlineStyleAttr = regexp.MustCompile(`(?i)\sstyle\s*=\s*(?:"[^"]*"|'[^']*')`)
	officeParagraph = regexp.MustCompile(`(?is)<o:p\b[^>]*>.*?</o:p\s*>|</?o:p\b[^>]*>`)
	headingTag      = regexp.MustCompile(`(?i)<h[1-6]\b`)
)

// Sanitize removes document-level cruft that word processors and browsers put
// on the clipboard: head, style and xml blocks, meta and link tags, comments,
// bare @page rules, inline style attributes and Office <o:p> wrappers.
// Body content is left untouched. The result is trimmed.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}

	s := htmlComment.ReplaceAllString(html, "")
	s = headBlock.ReplaceAllString(s, "")
	s = styleBlock.ReplaceAllString(s, "")
	s = xmlBlock.ReplaceAllString(s, "")
	s = metaOrLinkTag.ReplaceAllString(s, "")
	s = pageAtRule.ReplaceAllString(s, "")
	s = inlineStyleAttr.ReplaceAllString(s, "")
	s = officeParagraph.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// HasHeadingTags reports whether html contains any <h1>..<h6> element.
func HasHeadingTags(html string) bool {
	return headingTag.MatchString(html)
}
