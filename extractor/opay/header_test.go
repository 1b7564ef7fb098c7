package opay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeader_AllFields(t *testing.T) {
	text := "Account Name\nJane Doe\nAccount Number 1234567890\nCurrent Balance ₦1,000.00\nTotal Credit ₦500.00\nTotal Debit ₦300.00\n"

	header := ExtractHeader(text)

	require.NotNil(t, header.AccountName)
	assert.Equal(t, "Jane Doe", *header.AccountName)
	require.NotNil(t, header.AccountNumber)
	assert.Equal(t, "1234567890", *header.AccountNumber)
	require.NotNil(t, header.CurrentBalance)
	assert.Equal(t, "1,000.00", *header.CurrentBalance)
	require.NotNil(t, header.TotalCredit)
	assert.Equal(t, "500.00", *header.TotalCredit)
	require.NotNil(t, header.TotalDebit)
	assert.Equal(t, "300.00", *header.TotalDebit)
}

func TestExtractHeader_SameLineName(t *testing.T) {
	header := ExtractHeader("Account Name JOHN SMITH\nAccount Number\n8012345678\n")

	require.NotNil(t, header.AccountName)
	assert.Equal(t, "JOHN SMITH", *header.AccountName)
	require.NotNil(t, header.AccountNumber)
	assert.Equal(t, "8012345678", *header.AccountNumber)
}

func TestExtractHeader_PlaceholderBalance(t *testing.T) {
	header := ExtractHeader("Current Balance --\n")

	require.NotNil(t, header.CurrentBalance)
	assert.Equal(t, "--", *header.CurrentBalance)
}

func TestExtractHeader_WithoutCurrencyGlyph(t *testing.T) {
	header := ExtractHeader("Total Credit 12,345.67 Total Debit 89.10")

	require.NotNil(t, header.TotalCredit)
	assert.Equal(t, "12,345.67", *header.TotalCredit)
	require.NotNil(t, header.TotalDebit)
	assert.Equal(t, "89.10", *header.TotalDebit)
}

func TestExtractHeader_ShortAccountNumberIgnored(t *testing.T) {
	header := ExtractHeader("Account Number 123456\n")
	assert.Nil(t, header.AccountNumber)
}

func TestExtractHeader_Absent(t *testing.T) {
	header := ExtractHeader("nothing to see here")

	assert.True(t, header.IsEmpty())
}
