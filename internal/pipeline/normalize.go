package pipeline

import (
	"regexp"
	"strings"
)

// punctuationReplacer maps typographic punctuation to ASCII.
var punctuationReplacer = strings.NewReplacer(
	// Single quotes and acute accent
	"\u2018", "'", "\u2019", "'", "\u00B4", "'",
	// Double quotes and double prime
	"\u201C", `"`, "\u201D", `"`, "\u2033", `"`,
	// Minus sign, bullets and small square
	"\u2212", "-", "\u2022", "-", "\u00B7", "-", "\u25AA", "-",
	// Ellipsis
	"\u2026", "...",
	// En and em dashes
	"\u2013", "-", "\u2014", "-",
)

// Precompiled regex patterns for whitespace normalization.
var (
	escapedLeadingHash = regexp.MustCompile(`^\\(#{1,6})[ \t]+`)
	atxHeadingStart    = regexp.MustCompile(`^#{1,6}(?:[ \t]|$)`)
	spaceBeforePunct   = regexp.MustCompile(`[ \t]+[,.;:?!]`)
	multipleSpaces     = regexp.MustCompile(` {2,}`)
)

// NormalizePunctuation replaces smart quotes, bullet and minus variants,
// ellipses and en/em dashes with their ASCII equivalents.
func NormalizePunctuation(markdown string) string {
	return punctuationReplacer.Replace(markdown)
}

// Normalize tidies whitespace in Markdown. Steps run in a fixed order:
//  1. line endings become LF
//  2. a backslash-escaped leading "#" is unescaped
//  3. heading lines get a blank line before and after
//  4. runs of blank lines collapse to one
//  5. no-break spaces become spaces
//  6. whitespace before ,.;:!? is removed
//  7. space runs collapse, trailing spaces go, the result is trimmed
//
// Fenced code blocks are exempt from the line-level steps.
// Normalize is idempotent.
func Normalize(markdown string) string {
	s := NormalizeLineEndings(markdown)
	s = mapLinesOutsideFences(s, func(line string) string {
		return escapedLeadingHash.ReplaceAllString(line, "$1 ")
	})
	s = padHeadings(s)
	s = CompressBlankLines(s)
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = mapLinesOutsideFences(s, tidyLine)

	// Lines emptied by trailing-space removal can form new blank runs
	return Tidy(s)
}

// padHeadings surrounds every ATX heading line with blank lines.
func padHeadings(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inCodeBlock := false

	for i, line := range lines {
		if isFence(line) {
			inCodeBlock = !inCodeBlock
			out = append(out, line)
			continue
		}
		if inCodeBlock || !atxHeadingStart.MatchString(line) {
			out = append(out, line)
			continue
		}

		if len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, line)
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			out = append(out, "")
		}
	}

	return strings.Join(out, "\n")
}

// tidyLine removes space before punctuation, collapses interior space runs
// and strips trailing whitespace. Leading indentation is kept so nested
// lists survive.
func tidyLine(line string) string {
	body := strings.TrimLeft(line, " \t")
	if body == "" {
		return ""
	}
	indent := line[:len(line)-len(body)]

	body = removeSpaceBeforePunct(body)
	body = multipleSpaces.ReplaceAllString(body, " ")
	body = strings.TrimRight(body, " \t")

	return indent + body
}

// removeSpaceBeforePunct drops whitespace before ,.;:?! except in front of
// an image opener "![".
func removeSpaceBeforePunct(s string) string {
	matches := spaceBeforePunct.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		punct := m[1] - 1
		if s[punct] == '!' && punct+1 < len(s) && s[punct+1] == '[' {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteByte(s[punct])
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
