// Package pipeline implements the stages that turn pasted content into Markdown.
//
// Every stage is a pure function over strings and holds no state between calls:
//   - Sanitize strips document cruft (head, style, Office markup) from HTML
//   - RuleSet converts sanitized HTML to Markdown with option-driven overrides
//   - PreferOriginalHeading and EnsureNumberedHeadingParagraphBreak repair
//     heading boundaries damaged by the structural conversion
//   - NormalizePunctuation and Normalize tidy punctuation and whitespace
//   - DePDF repairs soft wraps and hyphenation in PDF-extracted text
//   - StripCode, StripItalic and StripBold remove inline styling from Markdown
//   - GoldmarkRenderer and StripPresentationAttrs produce clean HTML
//   - RebaseRelativePaths keeps img and a references valid across directories
//
// The order in which stages run is a contract owned by the root clip2md
// package. Reordering them changes output for ambiguous inputs.
package pipeline
