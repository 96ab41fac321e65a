package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Three or more newlines collapse to a single paragraph break
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Opening or closing fence of a fenced code block
	fencedCodeBlock = regexp.MustCompile("^[ ]{0,3}(```|~~~)")
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// CompressBlankLines collapses runs of blank lines to a single blank line.
func CompressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// Tidy collapses blank-line runs and trims the result.
func Tidy(content string) string {
	return strings.TrimSpace(CompressBlankLines(content))
}

// isFence reports whether line opens or closes a fenced code block.
func isFence(line string) bool {
	return fencedCodeBlock.MatchString(line)
}

// mapLinesOutsideFences applies fn to every line that is not part of a
// fenced code block. Fence lines and their content pass through verbatim.
func mapLinesOutsideFences(content string, fn func(line string) string) string {
	lines := strings.Split(content, "\n")
	inCodeBlock := false

	for i, line := range lines {
		if isFence(line) {
			inCodeBlock = !inCodeBlock
			continue
		}
		if inCodeBlock {
			continue
		}
		lines[i] = fn(line)
	}

	return strings.Join(lines, "\n")
}

// mapProseOutsideFences applies fn to each maximal run of lines outside
// fenced code blocks. Unlike mapLinesOutsideFences, fn sees several lines at
// once, so patterns spanning a line break still match.
func mapProseOutsideFences(content string, fn func(prose string) string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	prose := make([]string, 0, len(lines))
	inCodeBlock := false

	flush := func() {
		if len(prose) == 0 {
			return
		}
		out = append(out, fn(strings.Join(prose, "\n")))
		prose = prose[:0]
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
		prose = append(prose, line)
	}
	flush()

	return strings.Join(out, "\n")
}
