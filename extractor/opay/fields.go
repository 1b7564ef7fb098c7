package opay

import (
	"regexp"
	"strings"

	"github.com/aqlanhadi/ledgr/extractor/common"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	amountRegex     = regexp.MustCompile(`[+-]?\d{1,3}(?:,\d{3})*\.\d{2}`)
)

// ChannelFunc derives the channel tag from the normalized text that follows the
// balance token.
type ChannelFunc func(afterBalance string) string

// ExtractChannel takes the first three whitespace-separated words after the balance.
// The statement format does not delimit the channel, so this is an approximation.
func ExtractChannel(afterBalance string) string {
	fields := strings.Fields(afterBalance)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	return strings.Join(fields, " ")
}

// NormalizeBody collapses whitespace and line-break runs to single spaces.
func NormalizeBody(body string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(body, " "))
}

// ParseChunk turns a chunk into a transaction. ok is false when the body holds no
// monetary token and the chunk should be dropped.
func ParseChunk(c Chunk) (common.RawTransaction, bool) {
	return parseChunk(c, ExtractChannel)
}

func parseChunk(c Chunk, channelOf ChannelFunc) (common.RawTransaction, bool) {
	body := NormalizeBody(c.Body)

	amounts := amountRegex.FindAllStringIndex(body, 2)
	if len(amounts) == 0 {
		return common.RawTransaction{}, false
	}

	debitCredit := body[amounts[0][0]:amounts[0][1]]
	amount, err := common.ParseAmount(debitCredit)
	if err != nil {
		return common.RawTransaction{}, false
	}

	tx := common.RawTransaction{
		TransDate:   strings.TrimSpace(c.TransDate),
		ValueDate:   strings.TrimSpace(c.ValueDate),
		Description: strings.TrimSpace(body[:amounts[0][0]]),
		DebitCredit: debitCredit,
		Amount:      amount,
		Type:        common.TypeOf(debitCredit),
	}

	if len(amounts) > 1 {
		tx.Balance = body[amounts[1][0]:amounts[1][1]]
		tx.Channel = strings.TrimSpace(channelOf(body[amounts[1][1]:]))
	}

	return tx, true
}
