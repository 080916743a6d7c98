package convert

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gerunddev/mdsite/internal/htmlnode"
	"github.com/gerunddev/mdsite/internal/inline"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "title and paragraph",
			input:    "# Title\n\nSome **bold** text.",
			expected: "<div><h1>Title</h1><p>Some <b>bold</b> text.</p></div>",
		},
		{
			name:     "unordered list",
			input:    "- a\n- b",
			expected: "<div><ul><li>a</li><li>b</li></ul></div>",
		},
		{
			name:     "quote",
			input:    "> line one\n> line two",
			expected: "<div><blockquote>line one\nline two</blockquote></div>",
		},
		{
			name: "paragraphs",
			input: `
This is **bolded** paragraph
text in a p
tag here

This is another paragraph with _italic_ text and ` + "`code`" + ` here
`,
			expected: "<div><p>This is <b>bolded</b> paragraph\ntext in a p\ntag here</p><p>This is another paragraph with <i>italic</i> text and <code>code</code> here</p></div>",
		},
		{
			name:     "code block is not tokenized",
			input:    "```\nThis is text that _should_ remain\nthe **same** even with inline stuff\n```",
			expected: "<div><pre><code>This is text that _should_ remain\nthe **same** even with inline stuff\n</code></pre></div>",
		},
		{
			name:     "ordered list with inline spans",
			input:    "1. **first**\n2. a [link](https://boot.dev)\n3. ![pic](p.png)",
			expected: `<div><ol><li><b>first</b></li><li>a <a href="https://boot.dev">link</a></li><li><img alt="pic" src="p.png"></img></li></ol></div>`,
		},
		{
			name:     "heading text is verbatim",
			input:    "## Some _odd** heading",
			expected: "<div><h2>Some _odd** heading</h2></div>",
		},
		{
			name:     "quote is not tokenized",
			input:    "> \"I am in fact a Hobbit in all but size.\"\n> \n> -- J.R.R. _Tolkien",
			expected: "<div><blockquote>\"I am in fact a Hobbit in all but size.\"\n\n-- J.R.R. _Tolkien</blockquote></div>",
		},
		{
			name:     "seven hashes is a paragraph",
			input:    "####### Too many",
			expected: "<div><p>####### Too many</p></div>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := MarkdownToHTML(tt.input)
			if err != nil {
				t.Fatalf("MarkdownToHTML failed: %v", err)
			}
			if actual != tt.expected {
				t.Errorf("MarkdownToHTML mismatch.\n\nExpected:\n%s\n\nGot:\n%s", tt.expected, actual)
			}
		})
	}
}

func TestMarkdownToHTMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "unmatched bold aborts the document",
			input:   "# Title\n\nfine\n\na **b",
			wantErr: inline.ErrUnmatchedDelimiter,
		},
		{
			name:    "unmatched delimiter in list item",
			input:   "- ok\n- snake_case",
			wantErr: inline.ErrUnmatchedDelimiter,
		},
		{
			name:    "empty block has no children",
			input:   "# Title\n\n\n\ntext",
			wantErr: htmlnode.ErrMissingChildren,
		},
		{
			name:    "empty document",
			input:   "",
			wantErr: htmlnode.ErrMissingChildren,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := MarkdownToHTML(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("MarkdownToHTML error = %v, want %v", err, tt.wantErr)
			}
			if html != "" {
				t.Errorf("Expected no partial output, got %q", html)
			}
		})
	}
}

func TestHeadingToNode(t *testing.T) {
	for n := 1; n <= 6; n++ {
		b := strings.Repeat("#", n) + " Heading text"
		node, err := BlockToNode(b)
		if err != nil {
			t.Fatalf("BlockToNode(%q) failed: %v", b, err)
		}

		leaf, ok := node.(*htmlnode.LeafNode)
		if !ok {
			t.Fatalf("BlockToNode(%q) returned %T, want *htmlnode.LeafNode", b, node)
		}
		if want := fmt.Sprintf("h%d", n); leaf.Tag != want {
			t.Errorf("Tag = %q, want %q", leaf.Tag, want)
		}
		if *leaf.Value != "Heading text" {
			t.Errorf("Value = %q, want %q", *leaf.Value, "Heading text")
		}
	}

	if _, err := HeadingToNode("no hashes"); !errors.Is(err, ErrNotAHeading) {
		t.Errorf("Expected ErrNotAHeading, got %v", err)
	}
}

func TestListToNodeKeepsLineOrder(t *testing.T) {
	node, err := ListToNode("3. third written first\n1. then one\n1. then one again", true)
	if err != nil {
		t.Fatalf("ListToNode failed: %v", err)
	}

	html, err := node.HTML()
	if err != nil {
		t.Fatalf("HTML() failed: %v", err)
	}
	expected := "<ol><li>third written first</li><li>then one</li><li>then one again</li></ol>"
	if html != expected {
		t.Errorf("HTML() = %q, want %q", html, expected)
	}
}

func TestQuoteToNode(t *testing.T) {
	html, err := QuoteToNode("> line one\n> line two").HTML()
	if err != nil {
		t.Fatalf("HTML() failed: %v", err)
	}
	if expected := "<blockquote>line one\nline two</blockquote>"; html != expected {
		t.Errorf("HTML() = %q, want %q", html, expected)
	}
}

func TestSpanToLeaf(t *testing.T) {
	tests := []struct {
		name     string
		span     inline.Span
		expected string
	}{
		{"plain", inline.Text("This is a text node"), "This is a text node"},
		{"bold", inline.Span{Kind: inline.Bold, Text: "b"}, "<b>b</b>"},
		{"italic", inline.Span{Kind: inline.Italic, Text: "i"}, "<i>i</i>"},
		{"code", inline.Span{Kind: inline.Code, Text: "x := 1"}, "<code>x := 1</code>"},
		{"link", inline.Span{Kind: inline.Link, Text: "anchor text", URL: "http://example.com/"}, `<a href="http://example.com/">anchor text</a>`},
		{"image", inline.Span{Kind: inline.Image, Text: "alt text", URL: "http://example.com/images/logo.png"}, `<img alt="alt text" src="http://example.com/images/logo.png"></img>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf, err := SpanToLeaf(tt.span)
			if err != nil {
				t.Fatalf("SpanToLeaf failed: %v", err)
			}
			html, err := leaf.HTML()
			if err != nil {
				t.Fatalf("HTML() failed: %v", err)
			}
			if html != tt.expected {
				t.Errorf("HTML() = %q, want %q", html, tt.expected)
			}
		})
	}

	if _, err := SpanToLeaf(inline.Span{Kind: inline.Kind(42)}); !errors.Is(err, ErrUnknownSpanKind) {
		t.Errorf("Expected ErrUnknownSpanKind, got %v", err)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  error
	}{
		{
			name:     "h1",
			input:    "# Tolkien Fan Club\n\nSome text",
			expected: "Tolkien Fan Club",
		},
		{
			name:     "leading whitespace",
			input:    "  # Hello  \n\nbody",
			expected: "Hello",
		},
		{
			name:    "h2",
			input:   "## Not a title",
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "h6",
			input:   "###### Deep",
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "bare hash",
			input:   "# ",
			wantErr: ErrNotAHeading,
		},
		{
			name:    "paragraph first",
			input:   "Intro text\n\n# Title",
			wantErr: ErrNotAHeading,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ExtractTitle(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExtractTitle error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractTitle failed: %v", err)
			}
			if actual != tt.expected {
				t.Errorf("ExtractTitle = %q, want %q", actual, tt.expected)
			}
		})
	}
}
