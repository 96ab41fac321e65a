// Package clip2md converts pasted clipboard content (rich HTML or text
// extracted from PDFs) into clean Markdown, or into attribute-free HTML.
//
// # Quick Start
//
// The package-level Convert never fails and suits one-off calls:
//
//	md := clip2md.Convert(html, clip2md.SourceHTML, clip2md.DefaultOptions())
//
// For cancellation and error reporting, use a Converter:
//
//	conv := clip2md.NewConverter()
//	md, err := conv.Convert(ctx, clip2md.Input{
//	    Content: html,
//	    Kind:    clip2md.SourceHTML,
//	    Options: clip2md.Options{DropImages: true, Output: clip2md.OutputMarkdown},
//	})
//
// # Conversion Pipeline
//
// HTML input follows these stages:
//
//  1. Fast path: Markdown-looking input with no options is returned as is
//  2. Sanitizing (comments, head, style, Office XML, @page rules, style attributes)
//  3. Structural conversion via html-to-markdown, with rules selected by options
//  4. Heading reconciliation against the original <h1>
//  5. Punctuation and whitespace normalization
//  6. Optional PDF repair, setext headings, headings to bold
//  7. Clean HTML rendering via goldmark (output "clean")
//  8. Control character scrub
//
// PDF text skips the HTML stages and starts with PDF artifact repair
// (hyphenation, soft wraps, escaped brackets).
//
// # Paste Sessions
//
// A session is a list of RawEntry values. ConvertEntries converts each one
// with the current options and joins them with blank lines, so changing an
// option re-renders the whole session:
//
//	entry, ok := clip2md.EntryFromClipboard(htmlVariant, textVariant)
//	if ok {
//	    entries = append(entries, entry)
//	}
//	md, err := clip2md.ConvertEntries(ctx, entries, opts)
//
// A Converter is safe for concurrent use.
package clip2md
