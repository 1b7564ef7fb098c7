package opay

import (
	"strings"
	"testing"

	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChunk_Debit(t *testing.T) {
	tx, ok := ParseChunk(Chunk{
		TransDate: "01 Jan 2024",
		ValueDate: "01 Jan 2024",
		Body:      "Transfer to Mike\n -100.00   900.00 Mobile App\n",
	})

	require.True(t, ok)
	assert.Equal(t, "01 Jan 2024", tx.TransDate)
	assert.Equal(t, "01 Jan 2024", tx.ValueDate)
	assert.Equal(t, "Transfer to Mike", tx.Description)
	assert.Equal(t, "-100.00", tx.DebitCredit)
	assert.Equal(t, -100.0, tx.Amount)
	assert.Equal(t, common.Debit, tx.Type)
	assert.Equal(t, "900.00", tx.Balance)
	assert.Equal(t, "Mobile App", tx.Channel)
}

func TestParseChunk_CreditWithGrouping(t *testing.T) {
	tx, ok := ParseChunk(Chunk{Body: "Salary from ACME +1,250,000.50 1,300,000.00 Bank Transfer Inward extra words"})

	require.True(t, ok)
	assert.Equal(t, "Salary from ACME", tx.Description)
	assert.Equal(t, "+1,250,000.50", tx.DebitCredit)
	assert.InDelta(t, 1250000.50, tx.Amount, 0.001)
	assert.Equal(t, common.Credit, tx.Type)
	assert.Equal(t, "1,300,000.00", tx.Balance)
	assert.Equal(t, "Bank Transfer Inward", tx.Channel)
}

func TestParseChunk_NoBalance(t *testing.T) {
	tx, ok := ParseChunk(Chunk{Body: "OWealth interest 12.34"})

	require.True(t, ok)
	assert.Equal(t, "12.34", tx.DebitCredit)
	assert.Equal(t, "", tx.Balance)
	assert.Equal(t, "", tx.Channel)
}

func TestParseChunk_NoMonetaryToken(t *testing.T) {
	_, ok := ParseChunk(Chunk{TransDate: "01 Jan 2024", ValueDate: "01 Jan 2024", Body: "Page 2 of 3\n"})
	assert.False(t, ok)
}

func TestParseChunk_SignMatchesText(t *testing.T) {
	bodies := []string{"a -0.50 1.00", "b 0.50 1.00", "c +3.00", "d -1,000.00"}
	for _, body := range bodies {
		tx, ok := ParseChunk(Chunk{Body: body})
		require.True(t, ok, body)
		assert.Equal(t, strings.HasPrefix(tx.DebitCredit, "-"), tx.Type == common.Debit, body)
	}
}

func TestExtractChannel(t *testing.T) {
	assert.Equal(t, "Mobile App", ExtractChannel(" Mobile App"))
	assert.Equal(t, "A B C", ExtractChannel(" A  B\nC D"))
	assert.Equal(t, "", ExtractChannel("   "))
}

func TestNormalizeBody(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeBody("\n a\r\n\tb   c \n"))
}

func TestParseChunk_CustomChannelFunc(t *testing.T) {
	tx, ok := parseChunk(Chunk{Body: "x -1.00 2.00 POS Terminal 1234"}, func(after string) string {
		return strings.ToUpper(after)
	})

	require.True(t, ok)
	assert.Equal(t, "POS TERMINAL 1234", tx.Channel)
}
