package opay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSection(t *testing.T) {
	text := "head Summary - Wallet Balance WALLET Summary - OWealth Balance OWEALTH End Date tail"

	assert.Equal(t, " WALLET ", SplitSection(text, WalletSection, 0))
	assert.Equal(t, " OWEALTH ", SplitSection(text, SecondarySection, 0))
}

func TestSplitSection_FirstEndMarkerWins(t *testing.T) {
	text := "Summary - OWealth Balance A Date Printed B End Date C"

	assert.Equal(t, " A ", SplitSection(text, SecondarySection, 0))
}

func TestSplitSection_MissingStart(t *testing.T) {
	assert.Equal(t, "", SplitSection("Summary - OWealth Balance x", WalletSection, 0))
}

func TestSplitSection_MissingEnd(t *testing.T) {
	assert.Equal(t, " rest of text", SplitSection("Summary - Wallet Balance rest of text", WalletSection, 0))
}

func TestSplitSection_Offset(t *testing.T) {
	text := "S one E S two E"
	b := Boundary{Start: "S", End: []string{"E"}}

	assert.Equal(t, " one ", SplitSection(text, b, 0))
	assert.Equal(t, " two ", SplitSection(text, b, 6))
	assert.Equal(t, "", SplitSection(text, b, 100))
}

func TestSplitSections_Independent(t *testing.T) {
	text := "Summary - Wallet Balance W Summary - OWealth Balance O Date Printed"

	wallet, secondary := SplitSections(text, WalletSection, SecondarySection)

	assert.Equal(t, " W ", wallet)
	assert.Equal(t, " O ", secondary)
}
