package clip2md_test

import (
	"context"
	"fmt"

	"github.com/alnah/go-clip2md"
)

// Example converts a pasted HTML fragment with the default options.
func Example() {
	md := clip2md.Convert(
		`<p style="margin:0">Hello <strong>World</strong> — again</p>`,
		clip2md.SourceHTML,
		clip2md.DefaultOptions(),
	)
	fmt.Println(md)
	// Output: Hello **World** - again
}

// Example_pdf repairs text copied from a PDF viewer.
func Example_pdf() {
	md := clip2md.Convert("Administrative demands ulti-\n    mately cause burn-\nout \\[1\\].", clip2md.SourcePDF, clip2md.Options{DePDF: true})
	fmt.Println(md)
	// Output: Administrative demands ultimately cause burnout [1].
}

// Example_session re-renders a paste session with new options.
func Example_session() {
	var entries []clip2md.RawEntry
	for _, html := range []string{"<h2>Notes</h2>", "<p>First <em>point</em></p>"} {
		if entry, ok := clip2md.EntryFromClipboard(html, ""); ok {
			entries = append(entries, entry)
		}
	}

	md, err := clip2md.ConvertEntries(context.Background(), entries, clip2md.Options{
		DropItalic:     true,
		HeadingsToBold: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(md)
	// Output:
	// **Notes**
	//
	// First point
}
