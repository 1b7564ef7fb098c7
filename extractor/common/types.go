package common

import "strings"

type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

type Category string

const (
	CategoryIncome            Category = "Income"
	CategoryBillsAndUtilities Category = "Bills & Utilities"
	CategoryBetting           Category = "Betting"
	CategoryShopping          Category = "Shopping"
	CategoryTransfers         Category = "Transfers"
	CategoryAirtimeData       Category = "Airtime/Data"
	CategoryOthers            Category = "Others"
)

// Categories lists the closed taxonomy in display order.
var Categories = []Category{
	CategoryIncome,
	CategoryBillsAndUtilities,
	CategoryBetting,
	CategoryShopping,
	CategoryTransfers,
	CategoryAirtimeData,
	CategoryOthers,
}

// ParseCategory maps a serialized label back onto the taxonomy.
func ParseCategory(label string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == label {
			return c, true
		}
	}
	return "", false
}

// Source identifies which statement section produced a transaction.
type Source string

const (
	SourceWallet    Source = "wallet"
	SourceSecondary Source = "secondary"
)

func ParseSource(label string) (Source, bool) {
	switch Source(label) {
	case SourceWallet, SourceSecondary:
		return Source(label), true
	}
	return "", false
}

type HeaderData struct {
	AccountName    *string `json:"accountName"`
	AccountNumber  *string `json:"accountNumber"`
	CurrentBalance *string `json:"currentBalance"`
	TotalCredit    *string `json:"totalCredit"`
	TotalDebit     *string `json:"totalDebit"`
}

// IsEmpty reports whether no header label was found.
func (h HeaderData) IsEmpty() bool {
	return h.AccountName == nil && h.AccountNumber == nil && h.CurrentBalance == nil &&
		h.TotalCredit == nil && h.TotalDebit == nil
}

// RawTransaction is one parsed chunk. DebitCredit keeps the signed amount exactly as
// printed and is the source of truth for Type.
type RawTransaction struct {
	TransDate   string          `json:"transDate"`
	ValueDate   string          `json:"valueDate"`
	Description string          `json:"description"`
	DebitCredit string          `json:"debitCredit"`
	Balance     string          `json:"balance"`
	Channel     string          `json:"channel"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
}

// TypeOf derives the transaction type from the signed amount text.
func TypeOf(signedAmount string) TransactionType {
	if strings.HasPrefix(strings.TrimSpace(signedAmount), "-") {
		return Debit
	}
	return Credit
}

type CategorizedTransaction struct {
	RawTransaction
	Category  Category `json:"category"`
	Source    Source   `json:"source"`
	Reference string   `json:"transactionReference,omitempty"`
}

// NaturalKey is the identity used by duplicate-skipping storage.
type NaturalKey struct {
	TransDate   string
	ValueDate   string
	Description string
	DebitCredit string
	Balance     string
}

func (t CategorizedTransaction) Key() NaturalKey {
	return NaturalKey{
		TransDate:   t.TransDate,
		ValueDate:   t.ValueDate,
		Description: t.Description,
		DebitCredit: t.DebitCredit,
		Balance:     t.Balance,
	}
}

type Statement struct {
	Source                string                   `json:"source,omitempty"`
	Header                HeaderData               `json:"header"`
	WalletTransactions    []CategorizedTransaction `json:"walletTransactions"`
	SecondaryTransactions []CategorizedTransaction `json:"secondaryTransactions"`
}

// EmptyStatement is the well-formed result for unusable input.
func EmptyStatement() Statement {
	return Statement{
		WalletTransactions:    []CategorizedTransaction{},
		SecondaryTransactions: []CategorizedTransaction{},
	}
}

// Transactions concatenates wallet and secondary transactions in that order.
func (s Statement) Transactions() []CategorizedTransaction {
	all := make([]CategorizedTransaction, 0, len(s.WalletTransactions)+len(s.SecondaryTransactions))
	all = append(all, s.WalletTransactions...)
	return append(all, s.SecondaryTransactions...)
}
