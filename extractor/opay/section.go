package opay

import "strings"

// Boundary delimits a statement section. The first End marker found after Start wins.
type Boundary struct {
	Start string
	End   []string
}

var (
	WalletSection = Boundary{
		Start: "Summary - Wallet Balance",
		End:   []string{"Summary - OWealth Balance"},
	}
	SecondarySection = Boundary{
		Start: "Summary - OWealth Balance",
		End:   []string{"End Date", "Date Printed"},
	}
)

// SplitSection returns the text strictly between the first Start marker at or after
// offset and the nearest End marker after it. A missing Start yields "", a missing End
// extends the section to the end of text.
func SplitSection(text string, b Boundary, offset int) string {
	if b.Start == "" || offset < 0 || offset > len(text) {
		return ""
	}

	idx := strings.Index(text[offset:], b.Start)
	if idx == -1 {
		return ""
	}
	start := offset + idx + len(b.Start)

	end := len(text)
	for _, marker := range b.End {
		if marker == "" {
			continue
		}
		if i := strings.Index(text[start:], marker); i != -1 && start+i < end {
			end = start + i
		}
	}

	return text[start:end]
}

// SplitSections carves the wallet and secondary blocks out of the full text.
func SplitSections(text string, wallet, secondary Boundary) (string, string) {
	return SplitSection(text, wallet, 0), SplitSection(text, secondary, 0)
}
