package inline

// Kind identifies the inline style of a span
type Kind int

// Span kinds
const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// Span is a run of inline text sharing one kind.
// URL is only set for Link and Image spans.
type Span struct {
	Kind Kind
	Text string
	URL  string
}

// Text returns a plain span
func Text(s string) Span {
	return Span{Kind: Plain, Text: s}
}
