package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanDecimal_SimpleNumber(t *testing.T) {
	result, err := CleanDecimal("123.45")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "123.45" {
		t.Errorf("Expected '123.45', got '%s'", result.String())
	}
}

func TestCleanDecimal_WithCommas(t *testing.T) {
	result, err := CleanDecimal("1,234.56")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.String() != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", result.String())
	}
}

func TestCleanDecimal_WithCurrencyGlyph(t *testing.T) {
	result, err := CleanDecimal("₦1,234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", result.String())
}

func TestCleanDecimal_KeepsSign(t *testing.T) {
	result, err := CleanDecimal("-1,200.00")
	require.NoError(t, err)
	assert.Equal(t, "-1200", result.String())

	result, err = CleanDecimal("+50.25")
	require.NoError(t, err)
	assert.Equal(t, "50.25", result.String())
}

func TestCleanDecimal_EmptyString(t *testing.T) {
	result, err := CleanDecimal("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.IsZero() {
		t.Errorf("Expected zero, got '%s'", result.String())
	}
}

func TestCleanDecimal_NoNumbers(t *testing.T) {
	result, err := CleanDecimal("--")
	require.NoError(t, err)
	assert.True(t, result.IsZero())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"-100.00", -100},
		{"1,234,567.89", 1234567.89},
		{"+5.10", 5.1},
		{" 900.00 ", 900},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		require.NoError(t, err, tt.input)
		assert.InDelta(t, tt.expected, got, 0.0001, tt.input)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	_, err := ParseAmount("abc")
	assert.Error(t, err)
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, Debit, TypeOf("-1.00"))
	assert.Equal(t, Credit, TypeOf("1.00"))
	assert.Equal(t, Credit, TypeOf("+1.00"))
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, ok := ParseCategory(string(c))
		assert.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := ParseCategory("Groceries")
	assert.False(t, ok)
}

func TestStatementTransactions_WalletFirst(t *testing.T) {
	stmt := Statement{
		WalletTransactions:    []CategorizedTransaction{{Source: SourceWallet}},
		SecondaryTransactions: []CategorizedTransaction{{Source: SourceSecondary}, {Source: SourceSecondary}},
	}

	all := stmt.Transactions()
	require.Len(t, all, 3)
	assert.Equal(t, SourceWallet, all[0].Source)
	assert.Equal(t, SourceSecondary, all[2].Source)
}
