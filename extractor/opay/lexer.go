package opay

import (
	"regexp"
	"strings"
)

// Layout is the chunk grammar a section block is printed in.
type Layout int

const (
	// LayoutDateOnly anchors a transaction on "02 Jan 2006 02 Jan 2006".
	LayoutDateOnly Layout = iota
	// LayoutTimestamped anchors a transaction on "2006 Jan 02 15:04:05 02 Jan 2006".
	LayoutTimestamped
)

const timestampedMarker = "Trans. Time"

func (l Layout) String() string {
	switch l {
	case LayoutTimestamped:
		return "timestamped"
	default:
		return "date-only"
	}
}

// DetectLayout picks the grammar for a block.
func DetectLayout(block string) Layout {
	if strings.Contains(block, timestampedMarker) {
		return LayoutTimestamped
	}
	return LayoutDateOnly
}

type TokenKind int

const (
	TokenDate TokenKind = iota
	TokenDateTime
)

// Token is a date or date+time occurrence in a block, with byte offsets [Pos, End).
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
	End  int
}

// Date+time is tried first so the year of a timestamp is never read as part of a date.
var dateTokenRegex = regexp.MustCompile(
	`(\d{4}\s[A-Z][a-z]{2}\s\d{2}\s\d{2}:\d{2}:\d{2})|(\d{2}\s[A-Z][a-z]{2}\s\d{4})`,
)

// Scan lexes a block into a flat, position-ordered stream of date tokens.
func Scan(block string) []Token {
	matches := dateTokenRegex.FindAllStringSubmatchIndex(block, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		kind := TokenDate
		if m[2] != -1 {
			kind = TokenDateTime
		}
		tokens = append(tokens, Token{
			Kind: kind,
			Text: block[m[0]:m[1]],
			Pos:  m[0],
			End:  m[1],
		})
	}
	return tokens
}
