package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gerunddev/mdsite/internal/block"
	"github.com/gerunddev/mdsite/internal/htmlnode"
	"github.com/gerunddev/mdsite/internal/inline"
)

var (
	// ErrUnknownSpanKind is returned for a span kind with no HTML mapping
	ErrUnknownSpanKind = errors.New("unknown span kind")
	// ErrUnknownBlockType is returned for a block type with no transformer
	ErrUnknownBlockType = errors.New("unexpected block type")
)

// SpanToLeaf maps an inline span to a leaf node.
// Plain text becomes an untagged leaf.
func SpanToLeaf(span inline.Span) (*htmlnode.LeafNode, error) {
	switch span.Kind {
	case inline.Plain:
		return htmlnode.NewLeaf("", span.Text, nil), nil
	case inline.Bold:
		return htmlnode.NewLeaf("b", span.Text, nil), nil
	case inline.Italic:
		return htmlnode.NewLeaf("i", span.Text, nil), nil
	case inline.Code:
		return htmlnode.NewLeaf("code", span.Text, nil), nil
	case inline.Link:
		return htmlnode.NewLeaf("a", span.Text, htmlnode.Props{"href": span.URL}), nil
	case inline.Image:
		return htmlnode.NewLeaf("img", "", htmlnode.Props{
			"src": span.URL,
			"alt": span.Text,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpanKind, span.Kind)
	}
}

// textToChildren tokenizes text and maps every span to a leaf
func textToChildren(text string) ([]htmlnode.Node, error) {
	spans, err := inline.Tokenize(text)
	if err != nil {
		return nil, err
	}

	children := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		leaf, err := SpanToLeaf(span)
		if err != nil {
			return nil, err
		}
		children = append(children, leaf)
	}
	return children, nil
}

// HeadingToNode converts "## Text" into <h2>Text</h2>.
// The heading text is kept verbatim.
func HeadingToNode(b string) (*htmlnode.LeafNode, error) {
	m := block.HeadingPattern.FindStringSubmatch(b)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotAHeading, b)
	}
	return htmlnode.NewLeaf(fmt.Sprintf("h%d", len(m[1])), m[2], nil), nil
}

// CodeToNode strips the fences and wraps the raw content in <pre><code>
func CodeToNode(b string) (*htmlnode.ParentNode, error) {
	m := block.CodePattern.FindStringSubmatch(b)
	if m == nil {
		return nil, fmt.Errorf("%w: not a fenced code block", ErrUnknownBlockType)
	}
	code := htmlnode.NewLeaf("code", m[1], nil)
	return htmlnode.NewParent("pre", []htmlnode.Node{code}, nil), nil
}

// QuoteToNode joins the quote lines into a single <blockquote> leaf.
// Quote content is not tokenized.
func QuoteToNode(b string) *htmlnode.LeafNode {
	lines := block.Lines(b)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, block.QuotePrefix)
	}
	return htmlnode.NewLeaf("blockquote", strings.Join(lines, "\n"), nil)
}

// ListToNode converts a list block into <ul> or <ol> with one <li> per line
func ListToNode(b string, ordered bool) (*htmlnode.ParentNode, error) {
	tag := "ul"
	if ordered {
		tag = "ol"
	}

	lines := block.Lines(b)
	items := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		var text string
		if ordered {
			text = line[len(block.OrderedItemPattern.FindString(line)):]
		} else {
			text = strings.TrimPrefix(line, block.ItemPrefix)
		}

		children, err := textToChildren(text)
		if err != nil {
			return nil, fmt.Errorf("%s item %q: %w", tag, line, err)
		}
		items = append(items, htmlnode.NewParent("li", children, nil))
	}

	return htmlnode.NewParent(tag, items, nil), nil
}

// ParagraphToNode tokenizes the whole block into a <p>
func ParagraphToNode(b string) (*htmlnode.ParentNode, error) {
	children, err := textToChildren(b)
	if err != nil {
		return nil, fmt.Errorf("paragraph: %w", err)
	}
	return htmlnode.NewParent("p", children, nil), nil
}

// BlockToNode classifies a block and runs the matching transformer
func BlockToNode(b string) (htmlnode.Node, error) {
	switch t := block.Classify(b); t {
	case block.Heading:
		return asNode(HeadingToNode(b))
	case block.Code:
		return asNode(CodeToNode(b))
	case block.Quote:
		return QuoteToNode(b), nil
	case block.UnorderedList:
		return asNode(ListToNode(b, false))
	case block.OrderedList:
		return asNode(ListToNode(b, true))
	case block.Paragraph:
		return asNode(ParagraphToNode(b))
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownBlockType, t)
	}
}

// asNode keeps a failed transformer from leaking a typed nil into the interface
func asNode[T htmlnode.Node](n T, err error) (htmlnode.Node, error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}
