package inline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnmatchedDelimiter is returned when a delimiter is opened but never closed
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")
	// ErrUnsupportedDelimiter is returned for a delimiter with no span kind
	ErrUnsupportedDelimiter = errors.New("unsupported delimiter")
)

var (
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
)

// Tokenize splits text into spans.
// Passes run in a fixed order: bold, code, italic, images, links.
// Each pass only looks at spans that are still plain.
func Tokenize(text string) ([]Span, error) {
	spans := []Span{Text(text)}

	var err error
	for _, delim := range []string{"**", "`", "_"} {
		spans, err = SplitDelimiter(spans, delim)
		if err != nil {
			return nil, err
		}
	}

	// Images go first so the link pass never sees their brackets
	spans = SplitImages(spans)
	spans = SplitLinks(spans)

	return spans, nil
}

// kindForDelimiter maps a delimiter to the span kind it produces
func kindForDelimiter(delim string) (Kind, error) {
	switch delim {
	case "**":
		return Bold, nil
	case "`":
		return Code, nil
	case "_":
		return Italic, nil
	default:
		return Plain, fmt.Errorf("%w: %q", ErrUnsupportedDelimiter, delim)
	}
}

// SplitDelimiter splits plain spans on delim.
// Segments alternate plain, styled, plain, ... and empty segments are dropped.
// A plain span without the delimiter is passed through unchanged.
func SplitDelimiter(spans []Span, delim string) ([]Span, error) {
	kind, err := kindForDelimiter(delim)
	if err != nil {
		return nil, err
	}

	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		segments := strings.Split(span.Text, delim)
		switch {
		case len(segments) == 1:
			out = append(out, span)
		case len(segments)%2 == 1:
			for i, segment := range segments {
				if segment == "" {
					continue
				}
				if i%2 == 1 {
					out = append(out, Span{Kind: kind, Text: segment})
				} else {
					out = append(out, Text(segment))
				}
			}
		default:
			return nil, fmt.Errorf("%w %q in %q", ErrUnmatchedDelimiter, delim, span.Text)
		}
	}

	return out, nil
}

// SplitImages extracts ![alt](url) from plain spans
func SplitImages(spans []Span) []Span {
	return splitPattern(spans, imagePattern, Image, nil)
}

// SplitLinks extracts [text](url) from plain spans.
// A bracket directly preceded by '!' is not a link.
func SplitLinks(spans []Span) []Span {
	return splitPattern(spans, linkPattern, Link, func(text string, start int) bool {
		return start > 0 && text[start-1] == '!'
	})
}

// splitPattern scans each plain span left to right with a cursor.
// Text between matches becomes plain spans when non-empty.
func splitPattern(spans []Span, re *regexp.Regexp, kind Kind, reject func(text string, start int) bool) []Span {
	out := make([]Span, 0, len(spans))
	for _, span := range spans {
		if span.Kind != Plain {
			out = append(out, span)
			continue
		}

		text := span.Text
		cursor, plainStart := 0, 0
		for cursor < len(text) {
			loc := re.FindStringSubmatchIndex(text[cursor:])
			if loc == nil {
				break
			}
			start, end := cursor+loc[0], cursor+loc[1]
			if reject != nil && reject(text, start) {
				cursor = start + 1
				continue
			}

			if start > plainStart {
				out = append(out, Text(text[plainStart:start]))
			}
			out = append(out, Span{
				Kind: kind,
				Text: text[cursor+loc[2] : cursor+loc[3]],
				URL:  text[cursor+loc[4] : cursor+loc[5]],
			})
			cursor, plainStart = end, end
		}

		if plainStart < len(text) {
			out = append(out, Text(text[plainStart:]))
		}
	}

	return out
}
