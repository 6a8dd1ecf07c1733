package text_test

import (
	"strings"
	"testing"

	"ainews-backend/internal/utils/text"
)

func TestCleanPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean",
			input:    "OpenAI released a new model today.",
			expected: "OpenAI released a new model today.",
		},
		{
			name:     "surrounding whitespace",
			input:    "  \t summary text \n ",
			expected: "summary text",
		},
		{
			name:     "rewritten-text preamble",
			input:    "Here is your rewritten text for A1 learners: The model is new.",
			expected: "The model is new.",
		},
		{
			name:     "generic preamble case-insensitive",
			input:    "here is the summary: Models improved.",
			expected: "Models improved.",
		},
		{
			name:     "markdown emphasis and code markers",
			input:    "The **model** uses `transformers` internally.",
			expected: "The model uses transformers internally.",
		},
		{
			name:     "line breaks collapsed",
			input:    "First sentence.\nSecond sentence.\r\nThird sentence.",
			expected: "First sentence. Second sentence. Third sentence.",
		},
		{
			name:     "whitespace runs collapsed",
			input:    "spaced    out\t\ttext",
			expected: "spaced out text",
		},
		{
			name:     "preamble wrapped across lines",
			input:    "Here is your\nrewritten text: The model is new.",
			expected: "The model is new.",
		},
		{
			name:     "stacked preambles",
			input:    "Here is the text: Here is a summary: Models improved.",
			expected: "Models improved.",
		},
		{
			name:     "mid-sentence here is untouched",
			input:    "The point here is clarity.",
			expected: "The point here is clarity.",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.CleanPlainText(tt.input)
			if got != tt.expected {
				t.Errorf("CleanPlainText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanPlainText_Idempotent(t *testing.T) {
	inputs := []string{
		"Here is your rewritten text: **bold** and `code`\nacross\nlines",
		"   plain   ",
		"",
		"Here is a summary: done.",
		"Here is your\nrewritten text: The model is new.",
		"Here is the text: Here is a summary: Models improved.",
	}

	for _, input := range inputs {
		once := text.CleanPlainText(input)
		twice := text.CleanPlainText(once)
		if once != twice {
			t.Errorf("CleanPlainText not idempotent for %q: once=%q twice=%q", input, once, twice)
		}
	}
}

func TestCleanPlainText_OutputGuarantees(t *testing.T) {
	inputs := []string{
		"multi\nline\r\nwith **markers** and `ticks`",
		"Here is your rewritten text:\n**Header**\nbody",
	}

	for _, input := range inputs {
		got := text.CleanPlainText(input)
		if strings.ContainsAny(got, "\n\r") {
			t.Errorf("output contains line breaks: %q", got)
		}
		if strings.Contains(got, "**") || strings.Contains(got, "`") {
			t.Errorf("output contains markdown markers: %q", got)
		}
	}
}
