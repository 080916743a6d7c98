package htmlnode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingValue is returned when a leaf node has no value
	ErrMissingValue = errors.New("missing node value")
	// ErrMissingTag is returned when a parent node has no tag
	ErrMissingTag = errors.New("missing node tag")
	// ErrMissingChildren is returned when a parent node has no children
	ErrMissingChildren = errors.New("parent node must have children")
)

// Node is an element of the HTML document tree.
// It is implemented by *LeafNode and *ParentNode only.
type Node interface {
	// HTML renders the node and everything below it
	HTML() (string, error)

	writeHTML(b *strings.Builder) error
}

// Props holds the attributes of a node
type Props map[string]string

// HTML renders the attributes in ascending key order, each as ` key="value"`.
// Values are written verbatim.
func (p Props) HTML() string {
	if len(p) == 0 {
		return ""
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, k, p[k])
	}
	return b.String()
}

// LeafNode holds text content and no children.
// A nil Value is a contract violation reported at render time.
type LeafNode struct {
	Tag   string
	Value *string
	Props Props
}

// NewLeaf creates a leaf node. An empty tag renders the bare value.
func NewLeaf(tag, value string, props Props) *LeafNode {
	return &LeafNode{Tag: tag, Value: &value, Props: props}
}

// HTML renders the leaf
func (n *LeafNode) HTML() (string, error) {
	var b strings.Builder
	if err := n.writeHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n *LeafNode) writeHTML(b *strings.Builder) error {
	if n.Value == nil {
		if n.Tag != "" {
			return fmt.Errorf("<%s>: %w", n.Tag, ErrMissingValue)
		}
		return ErrMissingValue
	}

	if n.Tag == "" {
		b.WriteString(*n.Value)
		return nil
	}

	// Every tag is closed explicitly, img included
	b.WriteString("<" + n.Tag + n.Props.HTML() + ">")
	b.WriteString(*n.Value)
	b.WriteString("</" + n.Tag + ">")
	return nil
}

// ParentNode holds an ordered, non-empty list of children and no value
type ParentNode struct {
	Tag      string
	Children []Node
	Props    Props
}

// NewParent creates a parent node
func NewParent(tag string, children []Node, props Props) *ParentNode {
	return &ParentNode{Tag: tag, Children: children, Props: props}
}

// HTML renders the parent and its children recursively
func (n *ParentNode) HTML() (string, error) {
	var b strings.Builder
	if err := n.writeHTML(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n *ParentNode) writeHTML(b *strings.Builder) error {
	if n.Tag == "" {
		return ErrMissingTag
	}
	if len(n.Children) == 0 {
		return fmt.Errorf("<%s>: %w", n.Tag, ErrMissingChildren)
	}

	b.WriteString("<" + n.Tag + n.Props.HTML() + ">")
	for _, child := range n.Children {
		if err := child.writeHTML(b); err != nil {
			return err
		}
	}
	b.WriteString("</" + n.Tag + ">")
	return nil
}
