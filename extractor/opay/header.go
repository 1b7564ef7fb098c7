package opay

import (
	"regexp"
	"strings"

	"github.com/aqlanhadi/ledgr/extractor/common"
)

var (
	accountNameRegex    = regexp.MustCompile(`Account Name[\s\S]+?([\s\S]+?)\n`)
	accountNumberRegex  = regexp.MustCompile(`Account Number\s*(\d{7,})`)
	currentBalanceRegex = regexp.MustCompile(`Current Balance\s*₦?([\d,]+\.\d{2}|--)`)
	totalCreditRegex    = regexp.MustCompile(`Total Credit\s*₦?([\d,]+\.\d{2})`)
	totalDebitRegex     = regexp.MustCompile(`Total Debit\s*₦?([\d,]+\.\d{2})`)
)

// ExtractHeader searches the whole text for each account label independently.
// A missing label leaves its field nil.
//
// Total Credit and Total Debit are not scoped to the header region, so a transaction
// description carrying either label can be picked up first.
func ExtractHeader(text string) common.HeaderData {
	return common.HeaderData{
		AccountName:    firstGroup(accountNameRegex, text),
		AccountNumber:  firstGroup(accountNumberRegex, text),
		CurrentBalance: firstGroup(currentBalanceRegex, text),
		TotalCredit:    firstGroup(totalCreditRegex, text),
		TotalDebit:     firstGroup(totalDebitRegex, text),
	}
}

func firstGroup(re *regexp.Regexp, text string) *string {
	match := re.FindStringSubmatch(text)
	if len(match) < 2 {
		return nil
	}
	value := strings.TrimSpace(match[1])
	return &value
}
