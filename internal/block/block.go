package block

import (
	"regexp"
	"strings"
)

// Type is the structural type of a block
type Type int

const (
	Paragraph Type = iota
	Heading
	Code
	Quote
	UnorderedList
	OrderedList
)

// String returns the name of the block type
func (t Type) String() string {
	switch t {
	case Paragraph:
		return "paragraph"
	case Heading:
		return "heading"
	case Code:
		return "code"
	case Quote:
		return "quote"
	case UnorderedList:
		return "unordered_list"
	case OrderedList:
		return "ordered_list"
	default:
		return "unknown"
	}
}

// Separator splits a document into blocks
const Separator = "\n\n"

var (
	// HeadingPattern matches 1 to 6 hashes, one space and the heading text.
	// Without (?m), $ is the end of the block, so headings are single-line.
	HeadingPattern = regexp.MustCompile(`^(#{1,6}) (.*)$`)
	// CodePattern matches a block fenced by ``` lines and captures the content
	// between the fences, trailing newline included
	CodePattern = regexp.MustCompile("(?s)^```\n(.*\n)```$")
	// OrderedItemPattern matches the "N. " prefix of an ordered list line
	OrderedItemPattern = regexp.MustCompile(`^\d+\. `)
)

// Prefixes of quote and unordered list lines
const (
	QuotePrefix = "> "
	ItemPrefix  = "- "
)

// Segment splits a markdown document into trimmed blocks.
// Blocks that are empty after trimming are kept.
func Segment(document string) []string {
	raw := strings.Split(document, Separator)
	blocks := make([]string, 0, len(raw))
	for _, b := range raw {
		blocks = append(blocks, strings.TrimSpace(b))
	}
	return blocks
}

// Classify returns the type of a block.
// Rules are checked in order and the first match wins.
func Classify(block string) Type {
	switch {
	case HeadingPattern.MatchString(block):
		return Heading
	case CodePattern.MatchString(block):
		return Code
	case everyLine(block, func(line string) bool { return strings.HasPrefix(line, QuotePrefix) }):
		return Quote
	case everyLine(block, func(line string) bool { return strings.HasPrefix(line, ItemPrefix) }):
		return UnorderedList
	case everyLine(block, OrderedItemPattern.MatchString):
		return OrderedList
	default:
		return Paragraph
	}
}

// HeadingLevel returns the number of leading hashes of a heading block,
// or 0 if the block is not a heading
func HeadingLevel(block string) int {
	m := HeadingPattern.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	return len(m[1])
}

// Lines splits a trimmed block into its lines
func Lines(block string) []string {
	return strings.Split(strings.TrimSpace(block), "\n")
}

func everyLine(block string, match func(string) bool) bool {
	for _, line := range Lines(block) {
		if !match(line) {
			return false
		}
	}
	return true
}
