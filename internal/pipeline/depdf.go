package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// softHyphen is U+00AD, an invisible hyphenation hint left by PDF viewers.
const softHyphen = "\u00AD"

// Precompiled regex patterns for PDF artifact repair.
var (
	// Lines that start a block and must never be merged into prose:
	// headings, blockquotes, list items, setext underlines and table rows.
	pdfBlockStart = regexp.MustCompile(`^(?:#{1,6}\s|>|[*+-]\s|\d+\.|(?:=+|-{3,})$|\|)`)

	// Backslash runs before brackets or parentheses: "\[1\]" -> "[1]"
	escapedBracket = regexp.MustCompile(`\\+([\[\]()])`)

	// A hyphen left dangling between two lowercase words after line joining
	danglingHyphen = regexp.MustCompile(`(\p{Ll})- (\p{Ll}+)`)
)

// wordsAfterSuspendedHyphen follow hyphens that are part of the text, as in
// "pre- and post-operative".
var wordsAfterSuspendedHyphen = map[string]bool{
	"and": true,
	"or":  true,
	"to":  true,
	"nor": true,
}

// DePDF repairs soft wraps and hyphenation in text copied from a PDF.
// Prose lines are accumulated in a buffer and joined on their boundary
// characters:
//   - buffer ends with "-": the hyphen is dropped and the line appended
//   - letter then lowercase: appended without a space (mid-word wrap)
//   - anything else: joined with a space
//
// Blank lines end the paragraph. Block starts (headings, quotes, list items,
// setext underlines, table rows) flush the buffer and are kept on their own
// line with their indentation, so nested lists stay nested. Fenced code
// passes through verbatim. Finally backslashes before brackets are removed,
// space runs collapse and blank-line runs shrink.
func DePDF(text string) string {
	text = NormalizeLineEndings(text)
	text = strings.ReplaceAll(text, softHyphen, "")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	var buf strings.Builder
	inCodeBlock := false

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		out = append(out, tidyPDFLine(strings.TrimSpace(buf.String())))
		buf.Reset()
	}

	for _, line := range lines {
		if isFence(line) {
			flush()
			inCodeBlock = !inCodeBlock
			out = append(out, line)
			continue
		}
		if inCodeBlock {
			out = append(out, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
			out = append(out, "")
		case pdfBlockStart.MatchString(trimmed):
			flush()
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+tidyPDFLine(trimmed))
		default:
			joinWrappedLine(&buf, trimmed)
		}
	}
	flush()

	return Tidy(strings.Join(out, "\n"))
}

// joinWrappedLine appends a prose line to the paragraph buffer.
func joinWrappedLine(buf *strings.Builder, line string) {
	if buf.Len() == 0 {
		buf.WriteString(line)
		return
	}

	current := buf.String()
	if strings.HasSuffix(current, "-") {
		buf.Reset()
		buf.WriteString(current[:len(current)-1])
		buf.WriteString(line)
		return
	}

	last, _ := utf8.DecodeLastRuneInString(current)
	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsLetter(last) && unicode.IsLower(first) {
		buf.WriteString(line)
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(line)
}

func tidyPDFLine(line string) string {
	line = escapedBracket.ReplaceAllString(line, "$1")
	return multipleSpaces.ReplaceAllString(line, " ")
}

// RejoinDanglingHyphens joins "ulti- mately" into "ultimately". HTML
// conversion already folds line breaks into spaces, so DePDF alone cannot see
// these splits. Suspended hyphens such as "pre- and post-" are kept.
func RejoinDanglingHyphens(markdown string) string {
	return mapLinesOutsideFences(markdown, func(line string) string {
		return danglingHyphen.ReplaceAllStringFunc(line, func(m string) string {
			sub := danglingHyphen.FindStringSubmatch(m)
			if wordsAfterSuspendedHyphen[sub[2]] {
				return m
			}
			return sub[1] + sub[2]
		})
	})
}
