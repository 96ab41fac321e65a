package pipeline

import "testing"

func TestStripCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "fenced block unwrapped",
			input:    "before\n```go\nx := 1\n```\nafter",
			expected: "before\n\nx := 1\n\nafter",
		},
		{
			name:     "tilde fence unwrapped",
			input:    "~~~\nplain\n~~~",
			expected: "\nplain\n",
		},
		{
			name:     "inline span unwrapped",
			input:    "run `go test` now",
			expected: "run go test now",
		},
		{
			name:     "double backtick span unwrapped",
			input:    "a ``x`y`` b",
			expected: "a x`y b",
		},
		{
			name:     "no code unchanged",
			input:    "plain *text*",
			expected: "plain *text*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripCode(tt.input)
			if got != tt.expected {
				t.Errorf("StripCode() = %q, want %q", got, tt.expected)
			}
			if again := StripCode(got); again != got {
				t.Errorf("StripCode() not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestStripItalic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"asterisk", "an *emph* word", "an emph word"},
		{"underscore", "an _emph_ word", "an emph word"},
		{"adjacent spans", "*a* *b*", "a b"},
		{"bold untouched", "**bold** stays", "**bold** stays"},
		{"snake case untouched", "call snake_case_name now", "call snake_case_name now"},
		{"escaped asterisk untouched", `a \*b* c`, `a \*b* c`},
		{"list marker untouched", "* item one\n* item two", "* item one\n* item two"},
		{"fenced code untouched", "```\n*x*\n```", "```\n*x*\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripItalic(tt.input)
			if got != tt.expected {
				t.Errorf("StripItalic() = %q, want %q", got, tt.expected)
			}
			if again := StripItalic(got); again != got {
				t.Errorf("StripItalic() not idempotent: %q then %q", got, again)
			}
		})
	}
}

func TestStripBold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"asterisks", "Foo **Bold** Bar", "Foo Bold Bar"},
		{"underscores", "Foo __Bold__ Bar", "Foo Bold Bar"},
		{"italic untouched", "an *emph* word", "an *emph* word"},
		{"intraword underscores untouched", "a snake__case__name b", "a snake__case__name b"},
		{"fenced code untouched", "```\n**x**\n```", "```\n**x**\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := StripBold(tt.input)
			if got != tt.expected {
				t.Errorf("StripBold() = %q, want %q", got, tt.expected)
			}
		})
	}
}
