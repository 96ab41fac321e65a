package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// headingPrefixLength is how many leading characters of the original heading
// must match when the converted heading has no following line.
const headingPrefixLength = 20

// Precompiled regex patterns for heading repair and rewriting.
var (
	firstH1          = regexp.MustCompile(`(?is)<h1\b[^>]*>(.*?)</h1\s*>`)
	headingEntity    = regexp.MustCompile(`(?i)&(?:nbsp|ndash|mdash|amp|lt|gt);`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	markdownEscape   = regexp.MustCompile("\\\\([!-/:-@\\[-`{-~])")
	firstATXWithNext = regexp.MustCompile(`(?m)^(#{1,6})[ \t]*([^\n]+)(?:\n\s*)*([^\n]+)?`)
	numberedFusion   = regexp.MustCompile(`(^|\n)(\\?#[ \t]*\d+\.[^\n]*?)\s+([A-Z][A-Za-z0-9])`)
	atxHeadingLine   = regexp.MustCompile(`^(#{1,6})[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
	setextUnderline  = regexp.MustCompile(`^(?:=+|-+)[ \t]*$`)
	blockMarkerLine  = regexp.MustCompile(`^(?:[ \t]*(?:[>#|]|[-*+][ \t]|\d+[.)][ \t])|[ \t]*$)`)
)

// headingEntities decodes the entities commonly found in pasted headings.
var headingEntities = map[string]string{
	"&nbsp;":  " ",
	"&ndash;": "-",
	"&mdash;": "-",
	"&amp;":   "&",
	"&lt;":    "<",
	"&gt;":    ">",
}

// DecodeHeadingText strips tags from an HTML fragment, decodes the entities
// common in headings, collapses whitespace and trims.
func DecodeHeadingText(fragment string) string {
	s := tagPattern.ReplaceAllString(fragment, "")
	s = headingEntity.ReplaceAllStringFunc(s, func(entity string) string {
		return headingEntities[strings.ToLower(entity)]
	})
	return collapseWhitespace(s)
}

// PreferOriginalHeading repairs the first ATX heading when the structural
// conversion split the first <h1> across two lines. The heading line and the
// next non-blank line are concatenated and compared with the decoded <h1>
// text. On a match, both are replaced by the original heading text under the
// same ATX marker. When there is no next line, the heading is rewritten only if
// it equals the original or starts with its first twenty characters.
// Headings that already converted correctly are left alone.
func PreferOriginalHeading(sanitizedHTML, markdown string) string {
	m := firstH1.FindStringSubmatch(sanitizedHTML)
	if m == nil {
		return markdown
	}
	original := DecodeHeadingText(m[1])
	if original == "" {
		return markdown
	}

	loc := firstATXWithNext.FindStringSubmatchIndex(markdown)
	if loc == nil {
		return markdown
	}
	hashes := markdown[loc[2]:loc[3]]
	first := markdown[loc[4]:loc[5]]
	second := ""
	if loc[6] >= 0 {
		second = markdown[loc[6]:loc[7]]
	}

	want := comparableHeading(original)
	var repair bool
	if second != "" {
		repair = comparableHeading(first+" "+second) == want
	} else {
		got := comparableHeading(first)
		repair = got == want || strings.HasPrefix(got, runePrefix(want, headingPrefixLength))
	}
	if !repair {
		return markdown
	}

	return markdown[:loc[0]] + hashes + " " + original + markdown[loc[1]:]
}

// EnsureNumberedHeadingParagraphBreak inserts a blank line between a numbered
// heading such as "# 3.Background" and a capitalized word fused onto it.
// Only meaningful when the source HTML had no heading tags.
func EnsureNumberedHeadingParagraphBreak(markdown string) string {
	return numberedFusion.ReplaceAllString(markdown, "${1}${2}\n\n${3}")
}

// ToSetextHeadings rewrites level 1 and 2 ATX headings to underline style:
// "# T" becomes "T" over "=" and "## T" becomes "T" over "-".
func ToSetextHeadings(markdown string) string {
	out := mapLinesOutsideFences(markdown, func(line string) string {
		m := atxHeadingLine.FindStringSubmatch(line)
		if m == nil || len(m[1]) > 2 {
			return line
		}
		underline := "="
		if len(m[1]) == 2 {
			underline = "-"
		}
		title := m[2]
		width := max(utf8.RuneCountInString(title), 3)
		return "\n" + title + "\n" + strings.Repeat(underline, width) + "\n"
	})
	return Tidy(out)
}

// HeadingsToBold rewrites ATX headings and Setext heading pairs to a bold
// line followed by a blank line.
func HeadingsToBold(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))
	inCodeBlock := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isFence(line) {
			inCodeBlock = !inCodeBlock
			out = append(out, line)
			continue
		}
		if inCodeBlock {
			out = append(out, line)
			continue
		}

		if m := atxHeadingLine.FindStringSubmatch(line); m != nil {
			out = append(out, "**"+m[2]+"**", "")
			continue
		}
		if i+1 < len(lines) && setextUnderline.MatchString(lines[i+1]) &&
			!blockMarkerLine.MatchString(line) && !setextUnderline.MatchString(line) {
			out = append(out, "**"+strings.TrimSpace(line)+"**", "")
			i++
			continue
		}
		out = append(out, line)
	}

	return Tidy(strings.Join(out, "\n"))
}

// comparableHeading drops Markdown escapes and collapses whitespace.
func comparableHeading(s string) string {
	return collapseWhitespace(markdownEscape.ReplaceAllString(s, "$1"))
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// runePrefix returns the first n runes of s, or s when it is shorter.
func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
