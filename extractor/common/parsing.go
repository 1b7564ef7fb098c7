package common

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var nonAmountRegex = regexp.MustCompile(`[^0-9.+-]`)

// CleanDecimal parses a formatted amount such as "-1,200.00" or "₦500.00" into a
// decimal.Decimal. Grouping separators and currency glyphs are dropped, the sign is kept.
func CleanDecimal(text string) (decimal.Decimal, error) {
	cleanText := nonAmountRegex.ReplaceAllString(text, "")
	if !strings.ContainsAny(cleanText, "0123456789") {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(strings.TrimPrefix(cleanText, "+"))
	if err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

// ParseAmount parses a signed, comma-grouped amount as a float64.
func ParseAmount(text string) (float64, error) {
	cleanText := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	return strconv.ParseFloat(strings.TrimPrefix(cleanText, "+"), 64)
}
