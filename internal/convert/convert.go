package convert

import (
	"errors"
	"fmt"

	"github.com/gerunddev/mdsite/internal/block"
	"github.com/gerunddev/mdsite/internal/htmlnode"
)

var (
	// ErrNotAHeading is returned when a title is requested from a non-heading block
	ErrNotAHeading = errors.New("not a heading")
	// ErrInvalidTitle is returned when the title heading is not a non-empty h1
	ErrInvalidTitle = errors.New("invalid title")
)

// MarkdownToNode converts a markdown document into a <div> holding one node per block.
// The first failing block aborts the whole conversion.
func MarkdownToNode(markdown string) (*htmlnode.ParentNode, error) {
	blocks := block.Segment(markdown)
	children := make([]htmlnode.Node, 0, len(blocks))

	for i, b := range blocks {
		node, err := BlockToNode(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		children = append(children, node)
	}

	return htmlnode.NewParent("div", children, nil), nil
}

// MarkdownToHTML converts a markdown document and renders it
func MarkdownToHTML(markdown string) (string, error) {
	root, err := MarkdownToNode(markdown)
	if err != nil {
		return "", err
	}
	return root.HTML()
}

// ExtractTitle returns the text of the level 1 heading that opens the document
func ExtractTitle(markdown string) (string, error) {
	first := block.Segment(markdown)[0]

	if block.Classify(first) != block.Heading {
		return "", fmt.Errorf("%w: first block %q", ErrNotAHeading, first)
	}

	heading, err := HeadingToNode(first)
	if err != nil {
		return "", err
	}
	if block.HeadingLevel(first) != 1 || *heading.Value == "" {
		return "", fmt.Errorf("%w: %q must be a level 1 heading with text", ErrInvalidTitle, first)
	}

	return *heading.Value, nil
}
