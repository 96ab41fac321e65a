package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for Markdown-level style stripping.
//
// These work on text that is already Markdown. Regex matching cannot resolve
// nested or overlapping emphasis markers, so "*a **b* c**" and similar
// inputs may be stripped incompletely. When the source is still HTML, the
// structural converter's drop rules are the accurate path.
var (
	backtickFence   = regexp.MustCompile("(?ms)^[ ]{0,3}```[^\\n]*\\n(.*?)^[ ]{0,3}```[ \\t]*$")
	tildeFence      = regexp.MustCompile("(?ms)^[ ]{0,3}~~~[^\\n]*\\n(.*?)^[ ]{0,3}~~~[ \\t]*$")
	doubleBacktick  = regexp.MustCompile("``[ ]?([^\\n]+?)[ ]?``")
	singleBacktick  = regexp.MustCompile("`([^`\\n]+)`")
	asteriskItalic  = regexp.MustCompile(`(^|[^*\\])\*([^*\s](?:[^*\n]*[^*\s])?)\*([^*]|$)`)
	underscoreItal  = regexp.MustCompile(`(^|[^_\pL\pN\\])_([^_\s](?:[^_\n]*[^_\s])?)_([^_\pL\pN]|$)`)
	asteriskBold    = regexp.MustCompile(`\*\*([^*\n]+?)\*\*`)
	underscoreBold  = regexp.MustCompile(`(^|[^_\pL\pN])__([^_\n]+?)__([^_\pL\pN]|$)`)
	trailingNewline = regexp.MustCompile(`\n+$`)
)

// StripCode replaces fenced code blocks with their trimmed content and
// inline code spans with their text.
func StripCode(markdown string) string {
	unfence := func(re *regexp.Regexp) func(string) string {
		return func(block string) string {
			inner := re.FindStringSubmatch(block)[1]
			return "\n" + strings.Trim(trailingNewline.ReplaceAllString(inner, ""), "\n") + "\n"
		}
	}

	s := backtickFence.ReplaceAllStringFunc(markdown, unfence(backtickFence))
	s = tildeFence.ReplaceAllStringFunc(s, unfence(tildeFence))
	s = doubleBacktick.ReplaceAllString(s, "$1")
	s = singleBacktick.ReplaceAllString(s, "$1")
	return s
}

// StripItalic removes single-asterisk and single-underscore emphasis.
// Bold double markers are left in place. Code blocks are not touched.
func StripItalic(markdown string) string {
	return mapProseOutsideFences(markdown, func(prose string) string {
		prose = untilStable(prose, asteriskItalic, "$1$2$3")
		return untilStable(prose, underscoreItal, "$1$2$3")
	})
}

// StripBold removes double-asterisk and double-underscore emphasis.
// Code blocks are not touched.
func StripBold(markdown string) string {
	return mapProseOutsideFences(markdown, func(prose string) string {
		prose = untilStable(prose, asteriskBold, "$1")
		return untilStable(prose, underscoreBold, "$1$2$3")
	})
}

// untilStable reapplies re until nothing matches. Matches that share a
// boundary character are only found on the next pass. Every pass removes
// markers, so the loop ends.
func untilStable(s string, re *regexp.Regexp, repl string) string {
	for {
		next := re.ReplaceAllString(s, repl)
		if next == s {
			return s
		}
		s = next
	}
}
