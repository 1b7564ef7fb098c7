package opay

import "strings"

// Chunk is the unparsed span of one transaction: its two anchor dates and the free
// text that follows them. Offset is the anchor position in the block.
type Chunk struct {
	TransDate string
	ValueDate string
	Body      string
	Offset    int
}

// Tokenize splits a section block into per-transaction chunks, in anchor order.
func Tokenize(block string) []Chunk {
	return TokenizeLayout(block, DetectLayout(block))
}

// TokenizeLayout runs the chunk state machine over the block's token stream using
// the given grammar.
func TokenizeLayout(block string, layout Layout) []Chunk {
	tokens := Scan(block)
	chunks := []Chunk{}

	var open *Chunk
	bodyStart := 0
	closeAt := func(end int) {
		open.Body = block[bodyStart:end]
		chunks = append(chunks, *open)
		open = nil
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if isAnchor(block, tokens, i, layout) {
			if open != nil {
				closeAt(tok.Pos)
			}
			value := tokens[i+1]
			open = &Chunk{
				TransDate: strings.TrimSpace(tok.Text),
				ValueDate: strings.TrimSpace(value.Text),
				Offset:    tok.Pos,
			}
			bodyStart = value.End
			i++
			continue
		}

		// In the timestamped grammar any stray date or timestamp ends the open chunk.
		if open != nil && layout == LayoutTimestamped {
			closeAt(tok.Pos)
		}
	}

	if open != nil {
		closeAt(len(block))
	}

	return chunks
}

func isAnchor(block string, tokens []Token, i int, layout Layout) bool {
	if i+1 >= len(tokens) {
		return false
	}
	first, second := tokens[i], tokens[i+1]
	if second.Kind != TokenDate {
		return false
	}

	switch layout {
	case LayoutTimestamped:
		if first.Kind != TokenDateTime {
			return false
		}
	default:
		if first.Kind != TokenDate {
			return false
		}
	}

	return strings.TrimSpace(block[first.End:second.Pos]) == ""
}
