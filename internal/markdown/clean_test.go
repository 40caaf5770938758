package markdown

import (
	"strings"
	"testing"
)

func TestClean(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty",
			input:    "",
			expected: "",
		},
		{
			name:     "Bold and italic",
			input:    "**Bold** and *italic* and __under__",
			expected: "Bold and italic and under",
		},
		{
			name:     "Code fence keeps content",
			input:    "```markdown\nplain body\n```",
			expected: "plain body",
		},
		{
			name:     "Format instructions dropped",
			input:    "Real content here. FORMAT INSTRUCTIONS: write in bullets",
			expected: "Real content here.",
		},
		{
			name:     "Important dropped",
			input:    "Keep this.\nIMPORTANT: do not include headers\nmore junk",
			expected: "Keep this.",
		},
		{
			name:     "Use simple formatting dropped",
			input:    "Text. Use simple formatting and avoid tables.",
			expected: "Text.",
		},
		{
			name:     "Be concise dropped",
			input:    "Text. Be concise.",
			expected: "Text.",
		},
		{
			name:     "Lowercase be concise is content",
			input:    "Our team will be concise and focused on growth.",
			expected: "Our team will be concise and focused on growth.",
		},
		{
			name:     "Lowercase simple formatting is content",
			input:    "Menus use simple formatting for quick reading.",
			expected: "Menus use simple formatting for quick reading.",
		},
		{
			name:     "Whitespace collapsed",
			input:    "one\n\n\ntwo   three\tfour",
			expected: "one two three four",
		},
		{
			name:     "Dash bullets",
			input:    "- first\n- second",
			expected: "• first • second",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Clean(tc.input)
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestClean_PlainTextRoundTrip(t *testing.T) {
	input := "A plain sentence with no markup.\nAnd a second line."
	want := strings.Join(strings.Fields(input), " ")
	if got := Clean(input); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"**Mission**: grow *fast*",
		"- a\n- b\n\n```\ncode\n```",
		"Nothing special",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Errorf("Clean not stable for %q: %q then %q", in, once, twice)
		}
	}
}

func TestChain(t *testing.T) {
	upper := Transform(strings.ToUpper)
	exclaim := Transform(func(s string) string { return s + "!" })

	if got := Chain(upper, exclaim)("hi"); got != "HI!" {
		t.Errorf("Expected HI!, got %q", got)
	}
	if got := Chain()("same"); got != "same" {
		t.Errorf("Expected identity chain, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("Expected rune-safe truncation, got %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Expected unchanged string, got %q", got)
	}
}

func TestToHTML(t *testing.T) {
	if got := ToHTML(""); got != "" {
		t.Errorf("Expected empty HTML, got %q", got)
	}

	got := string(ToHTML("- one\n- two"))
	if !strings.Contains(got, "<li>one</li>") {
		t.Errorf("Expected list item in output, got %q", got)
	}
}
