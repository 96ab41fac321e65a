package clip2md

// Notes:
// - Property tests mirror the documented pipeline guarantees end to end
// - mockRenderer isolates clean-mode fallback behavior from goldmark

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockRenderer struct {
	output string
	err    error
}

func (m *mockRenderer) Render(markdown string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.output != "" {
		return m.output, nil
	}
	return "<p>" + markdown + "</p>", nil
}

// ---------------------------------------------------------------------------
// Pipeline properties
// ---------------------------------------------------------------------------

func TestConvert_HeadingTextPreservation(t *testing.T) {
	t.Parallel()

	raw := "<h1>3.Background and State of the Art</h1><p>Proximal humerus fractures are common.</p>"
	got := Convert(raw, SourceHTML, DefaultOptions())

	heading := strings.Index(got, "# 3.Background and State of the Art")
	body := strings.Index(got, "Proximal humerus fractures")
	if heading < 0 || body < 0 || heading > body {
		t.Fatalf("Convert() = %q, want heading before body", got)
	}
	if !strings.Contains(got, "# 3.Background and State of the Art\n\nProximal") {
		t.Errorf("Convert() = %q, want a blank line between heading and body", got)
	}
}

func TestConvert_ImageSuppression(t *testing.T) {
	t.Parallel()

	got := Convert(`<p>Hi <img src="a.png" alt="x"> there</p>`, SourceHTML, Options{DropImages: true})
	if !strings.Contains(got, "Hi") || !strings.Contains(got, "there") {
		t.Errorf("Convert() = %q, want surrounding text kept", got)
	}
	if strings.Contains(got, "![") {
		t.Errorf("Convert() = %q, want no image", got)
	}
}

func TestConvert_HyphenationRepair(t *testing.T) {
	t.Parallel()

	got := Convert("ulti-\n    mately", SourcePDF, Options{DePDF: true})
	if got != "ultimately" {
		t.Errorf("Convert() = %q, want %q", got, "ultimately")
	}
}

func TestConvert_DashNormalization(t *testing.T) {
	t.Parallel()

	got := Convert("range — here and en–dash", SourcePDF, Options{NormalizePunctuation: true})
	if got != "range - here and en-dash" {
		t.Errorf("Convert() = %q, want %q", got, "range - here and en-dash")
	}

	html := Convert("<p>range — here and en–dash</p>", SourceHTML, Options{NormalizePunctuation: true})
	if html != "range - here and en-dash" {
		t.Errorf("Convert(HTML) = %q, want %q", html, "range - here and en-dash")
	}
}

func TestConvert_CleanRoundTrip(t *testing.T) {
	t.Parallel()

	got := Convert(`<p style="color:red">Hello <strong>World</strong></p>`, SourceHTML, Options{Output: OutputClean})
	for _, want := range []string{"<p>", "Hello", "World"} {
		if !strings.Contains(got, want) {
			t.Errorf("Convert() = %q, want to contain %q", got, want)
		}
	}
	if strings.Contains(got, `style="`) {
		t.Errorf("Convert() = %q, want no style attribute", got)
	}
}

func TestConvert_ControlCharacterScrub(t *testing.T) {
	t.Parallel()

	inputs := []struct {
		raw  string
		kind SourceKind
		opts Options
	}{
		{"<p>a\x00b\x1bc</p>", SourceHTML, DefaultOptions()},
		{"# Title\x07\n\ntext", SourceHTML, Options{}},
		{"line\x00one\nline two\u0085", SourcePDF, Options{DePDF: true}},
		{"<p>x\x01y</p>", SourceHTML, Options{Output: OutputClean}},
		{"a\x02b", SourcePDF, Options{Output: OutputClean}},
	}

	for _, in := range inputs {
		got := Convert(in.raw, in.kind, in.opts)
		for _, r := range got {
			if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
				t.Errorf("Convert(%q) = %q, contains control %U", in.raw, got, r)
			}
		}
	}
}

func TestConvert_SanitizerRemovesCruft(t *testing.T) {
	t.Parallel()

	raw := "<html><head><style>@page{size:8.5in;}</style></head><body><p>Body text</p></body></html>"
	got := Convert(raw, SourceHTML, DefaultOptions())
	if strings.Contains(got, "@page") || strings.Contains(got, "size") {
		t.Errorf("Convert() = %q, want no page rule", got)
	}
	if !strings.Contains(got, "Body text") {
		t.Errorf("Convert() = %q, want body kept", got)
	}
}

func TestConvert_NoOpFastPath(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"# Title\n\nSome *markdown* text.",
		"> quote\n\n- item  \n- item",
		"```\ncode\n```",
	}
	for _, raw := range inputs {
		if got := Convert(raw, SourceHTML, Options{}); got != raw {
			t.Errorf("Convert(%q) = %q, want input unchanged", raw, got)
		}
	}
}

// ---------------------------------------------------------------------------
// Options and paths
// ---------------------------------------------------------------------------

func TestConvert_HTMLOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		opts        Options
		expected    string
		contains    []string
		notContains []string
	}{
		{
			name:     "bold kept by default",
			input:    "<p>Hi <strong>there</strong></p>",
			opts:     DefaultOptions(),
			expected: "Hi **there**",
		},
		{
			name:     "bold dropped",
			input:    "<p>Foo <strong>Bold</strong> Bar</p>",
			opts:     Options{DropBold: true},
			expected: "Foo Bold Bar",
		},
		{
			name:     "italic dropped",
			input:    "<p>an <em>emph</em> word</p>",
			opts:     Options{DropItalic: true},
			expected: "an emph word",
		},
		{
			name:     "inline code dropped",
			input:    "<p>run <code>make</code> now</p>",
			opts:     Options{DropCode: true},
			expected: "run make now",
		},
		{
			name:     "setext headings",
			input:    "<h1>Title</h1><p>Body</p>",
			opts:     Options{PandocHeadings: true},
			expected: "Title\n=====\n\nBody",
		},
		{
			name:     "headings to bold",
			input:    "<h2>Section</h2><p>Body</p>",
			opts:     Options{HeadingsToBold: true},
			expected: "**Section**\n\nBody",
		},
		{
			name:     "superscript",
			input:    "<p>E = mc<sup>2</sup></p>",
			opts:     DefaultOptions(),
			expected: "E = mc^2^",
		},
		{
			name:     "PDF repair on pasted HTML",
			input:    "<p>and ulti- mately physician</p>",
			opts:     Options{DePDF: true},
			expected: "and ultimately physician",
		},
		{
			name:     "numbered heading split from body",
			input:    "<p># 3.Background Proximal humerus</p>",
			opts:     DefaultOptions(),
			expected: "# 3.Background\n\nProximal humerus",
		},
		{
			name:     "numbered heading left fused when heading tags exist",
			input:    "<h2>Intro</h2><p># 3.Background Proximal humerus</p>",
			opts:     DefaultOptions(),
			expected: "## Intro\n\n# 3.Background Proximal humerus",
		},
		{
			name:     "nested list survives PDF repair",
			input:    "<ul><li>a<ul><li>b</li></ul></li></ul>",
			opts:     Options{DePDF: true},
			contains: []string{"- a", "\n  - b"},
		},
		{
			name:        "office cruft removed",
			input:       `<p class="MsoNormal" style="margin:0">Hello<o:p></o:p></p><!-- comment -->`,
			opts:        DefaultOptions(),
			expected:    "Hello",
			notContains: []string{"o:p", "comment"},
		},
		{
			name:     "clean output",
			input:    "<h1 id=\"x\">Title</h1><p>Body</p>",
			opts:     Options{Output: OutputClean},
			contains: []string{"<h1>Title</h1>", "<p>Body</p>"},
		},
		{
			name:     "empty input",
			input:    "",
			opts:     DefaultOptions(),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Convert(tt.input, SourceHTML, tt.opts)
			if len(tt.contains) == 0 && got != tt.expected {
				t.Errorf("Convert() = %q, want %q", got, tt.expected)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Convert() = %q, want to contain %q", got, want)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("Convert() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestConvert_PDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		opts     Options
		expected string
	}{
		{
			name:     "soft wraps joined",
			input:    "end of sentence\nNext one",
			opts:     Options{},
			expected: "end of sentence Next one",
		},
		{
			name:     "escaped brackets cleaned",
			input:    `burnout \[1\]`,
			opts:     Options{},
			expected: "burnout [1]",
		},
		{
			name:     "markdown styles stripped",
			input:    "use `go` with **care** and *taste*",
			opts:     Options{DropCode: true, DropBold: true, DropItalic: true},
			expected: "use go with care and taste",
		},
		{
			name:     "clean output wraps paragraphs",
			input:    "a < b\n\nnext",
			opts:     Options{Output: OutputClean},
			expected: "<p>a &lt; b</p>\n<p>next</p>",
		},
		{
			name:     "heading kept and padded",
			input:    "Body\n# Heading\nMore",
			opts:     Options{},
			expected: "Body\n\n# Heading\n\nMore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Convert(tt.input, SourcePDF, tt.opts)
			if got != tt.expected {
				t.Errorf("Convert() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvert_Coercion(t *testing.T) {
	t.Parallel()

	got := Convert("<p>Hi</p>", SourceKind("bogus"), Options{Output: "bogus"})
	if got != "Hi" {
		t.Errorf("Convert() = %q, want %q", got, "Hi")
	}
}

// ---------------------------------------------------------------------------
// Converter
// ---------------------------------------------------------------------------

func TestConverter_ConvertValidation(t *testing.T) {
	t.Parallel()

	conv := NewConverter()
	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:    "text kind rejected",
			input:   Input{Content: "x", Kind: SourceText},
			wantErr: ErrInvalidSourceKind,
		},
		{
			name:    "empty kind rejected",
			input:   Input{Content: "x"},
			wantErr: ErrInvalidSourceKind,
		},
		{
			name:    "unknown output rejected",
			input:   Input{Content: "x", Kind: SourceHTML, Options: Options{Output: "pdf"}},
			wantErr: ErrInvalidOutputMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverter_ConvertCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewConverter().Convert(ctx, Input{Content: "<p>x</p>", Kind: SourceHTML, Options: DefaultOptions()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConverter_RendererFallback(t *testing.T) {
	t.Parallel()

	conv := NewConverter(WithRenderer(&mockRenderer{err: errors.New("boom")}))
	got, err := conv.Convert(context.Background(), Input{
		Content: "<p>First</p><p>Second</p>",
		Kind:    SourceHTML,
		Options: Options{Output: OutputClean},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != "<p>First</p>\n<p>Second</p>" {
		t.Errorf("Convert() = %q, want paragraph fallback", got)
	}
}

func TestConverter_CustomRendererAttributesStripped(t *testing.T) {
	t.Parallel()

	conv := NewConverter(WithRenderer(&mockRenderer{output: `<p class="x">Body</p>`}))
	got, err := conv.Convert(context.Background(), Input{
		Content: "<p>Body</p>",
		Kind:    SourceHTML,
		Options: Options{Output: OutputClean},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != "<p>Body</p>" {
		t.Errorf("Convert() = %q, want %q", got, "<p>Body</p>")
	}
}

func TestConverter_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv := &Converter{}
	_, err := conv.Convert(context.Background(), Input{Content: "<p>x</p>", Kind: SourceHTML, Options: DefaultOptions()})
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("Convert() error = %v, want internal error", err)
	}
}

func TestWithRenderer_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithRenderer(nil) did not panic")
		}
	}()
	WithRenderer(nil)
}

func TestConverter_Concurrent(t *testing.T) {
	t.Parallel()

	conv := NewConverter()
	opts := []Options{
		DefaultOptions(),
		{DropBold: true},
		{DropItalic: true, Output: OutputClean},
		{DropCode: true, DePDF: true},
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := opts[i%len(opts)]
			want := Convert("<p>Foo <strong>Bold</strong> <em>it</em></p>", SourceHTML, o)
			got, err := conv.Convert(context.Background(), Input{
				Content: "<p>Foo <strong>Bold</strong> <em>it</em></p>",
				Kind:    SourceHTML,
				Options: o,
			})
			if err != nil {
				t.Errorf("Convert() error = %v", err)
				return
			}
			if got != want {
				t.Errorf("Convert() = %q, want %q", got, want)
			}
		}(i)
	}
	wg.Wait()
}
