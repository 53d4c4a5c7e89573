package conv

import (
	"testing"
)

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hello world",
			expected: "Hello world\n",
		},
		{
			name:     "bold text",
			input:    "**bold**",
			expected: "<strong>bold</strong>\n",
		},
		{
			name:     "italic text",
			input:    "*italic*",
			expected: "<em>italic</em>\n",
		},
		{
			name:     "strikethrough",
			input:    "~~strikethrough~~",
			expected: "<del>strikethrough</del>\n",
		},
		{
			name:     "inline code",
			input:    "`code`",
			expected: "<code>code</code>\n",
		},
		{
			name:     "code block",
			input:    "```\ncode block\n```",
			expected: "<pre><code>code block\n</code></pre>\n",
		},
		{
			name:     "blockquote",
			input:    "> quote",
			expected: "<blockquote>\nquote\n</blockquote>\n",
		},
		{
			name:     "link",
			input:    "[link](https://example.com)",
			expected: "<a href=\"https://example.com\">link</a>\n",
		},
		{
			name:     "raw HTML underline preserved",
			input:    "<u>underline</u>",
			expected: "<u>underline</u>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToTelegramHTML([]byte(tt.input))
			if got != tt.expected {
				t.Errorf("MarkdownToTelegramHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitMessage(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := SplitMessage("hello", 100)
		if len(chunks) != 1 || chunks[0] != "hello" {
			t.Fatalf("chunks = %v, want [hello]", chunks)
		}
	})

	t.Run("splits at newline boundary", func(t *testing.T) {
		text := "first line of output\nsecond line of output"
		chunks := SplitMessage(text, 25)
		if len(chunks) != 2 {
			t.Fatalf("len(chunks) = %d, want 2", len(chunks))
		}
		if chunks[0] != "first line of output" {
			t.Errorf("chunks[0] = %q", chunks[0])
		}
		if chunks[1] != "second line of output" {
			t.Errorf("chunks[1] = %q", chunks[1])
		}
	})

	t.Run("hard split without newlines", func(t *testing.T) {
		text := "aaaaaaaaaabbbbbbbbbbcc"
		chunks := SplitMessage(text, 10)
		if len(chunks) != 3 {
			t.Fatalf("len(chunks) = %d, want 3", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 10 {
				t.Errorf("chunk %d longer than max: %q", i, c)
			}
		}
	})

	t.Run("every chunk respects the limit", func(t *testing.T) {
		var b []byte
		for i := 0; i < 50; i++ {
			b = append(b, []byte("line of text here\n")...)
		}
		for _, c := range SplitMessage(string(b), 120) {
			if len(c) > 120 {
				t.Errorf("chunk exceeds limit: %d bytes", len(c))
			}
		}
	})
}
