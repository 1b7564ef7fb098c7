package opay

import (
	"strings"
	"testing"

	"github.com/aqlanhadi/ledgr/categorizer"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Synthetic statement text shaped like the decoder's output for a date-only statement.
func getTestTextDateOnly() string {
	return strings.Join([]string{
		"OPay Account Statement",
		"Account Name",
		"Jane Doe",
		"Account Number 1234567890",
		"Current Balance ₦1,000.00",
		"Total Credit ₦5,500.00",
		"Total Debit ₦4,500.00",
		"Summary - Wallet Balance",
		"Trans. Date Value Date Description Debit/Credit Balance After Channel Transaction Reference",
		"01 Jan 2024 01 Jan 2024Transfer to Mike -100.00 900.00 Mobile App 240101000001",
		"02 Jan 2024 02 Jan 2024Salary ACME LTD 5,000.00 5,900.00 Bank Transfer",
		"03 Jan 2024 03 Jan 2024Airtime MTN",
		"08012345678 -200.00 5,700.00 Mobile App",
		"04 Jan 2024 04 Jan 2024",
		"Page 1 of 2",
		"05 Jan 2024 05 Jan 2024Bet9ja deposit -4,200.00 1,500.00 Web",
		"Summary - OWealth Balance",
		"Trans. Date Value Date Description Debit/Credit Balance After",
		"01 Jan 2024 01 Jan 2024Auto-save to OWealth 500.00 500.00 OWealth",
		"02 Jan 2024 02 Jan 2024Bill refund credited 0.20 500.20",
		"End Date 31 Jan 2024",
		"Date Printed 01 Feb 2024",
	}, "\n")
}

func getTestTextTimestamped() string {
	return strings.Join([]string{
		"Account Name JOHN SMITH",
		"Account Number 8012345678",
		"Current Balance --",
		"Summary - Wallet Balance",
		"Trans. Time Value Date Description Debit/Credit Balance After Channel",
		"2024 Mar 05 10:11:12 05 Mar 2024 Jumia order -3,000.00 7,000.00 Mobile App",
		"2024 Mar 06 08:00:00 06 Mar 2024 DSTV payment -2,000.00 5,000.00 USSD",
		"07 Mar 2024 07 Mar 2024 stray pair in timestamped layout 1.00 2.00",
		"Summary - OWealth Balance",
		"Trans. Time Value Date Description Debit/Credit Balance After",
		"2024 Mar 07 00:00:01 07 Mar 2024 Interest Earned 1.25 5,001.25",
		"Date Printed 08 Mar 2024",
	}, "\n")
}

func TestParse_HeaderAndWalletTransfer(t *testing.T) {
	text := "Account Name\nJane Doe\nAccount Number 1234567890\nCurrent Balance ₦1,000.00\nTotal Credit ₦500.00\nTotal Debit ₦300.00\nSummary - Wallet Balance\n01 Jan 2024 01 Jan 2024Transfer to Mike -100.00 900.00 Mobile App\nSummary - OWealth Balance\nEnd Date"

	stmt := Parse(text)

	require.NotNil(t, stmt.Header.AccountName)
	assert.Equal(t, "Jane Doe", *stmt.Header.AccountName)
	assert.Equal(t, "1234567890", *stmt.Header.AccountNumber)
	assert.Equal(t, "1,000.00", *stmt.Header.CurrentBalance)
	assert.Equal(t, "500.00", *stmt.Header.TotalCredit)
	assert.Equal(t, "300.00", *stmt.Header.TotalDebit)

	require.Len(t, stmt.WalletTransactions, 1)
	tx := stmt.WalletTransactions[0]
	assert.Equal(t, "01 Jan 2024", tx.TransDate)
	assert.Equal(t, "01 Jan 2024", tx.ValueDate)
	assert.Equal(t, "Transfer to Mike", tx.Description)
	assert.Equal(t, -100.0, tx.Amount)
	assert.Equal(t, common.Debit, tx.Type)
	assert.Equal(t, "900.00", tx.Balance)
	assert.Equal(t, "Mobile App", tx.Channel)
	assert.Equal(t, common.CategoryTransfers, tx.Category)
	assert.Equal(t, common.SourceWallet, tx.Source)

	assert.NotNil(t, stmt.SecondaryTransactions)
	assert.Empty(t, stmt.SecondaryTransactions)
}

func TestParse_NoMarkers(t *testing.T) {
	stmt := Parse("just some unrelated document\nwith two lines\n")

	assert.True(t, stmt.Header.IsEmpty())
	assert.NotNil(t, stmt.WalletTransactions)
	assert.Empty(t, stmt.WalletTransactions)
	assert.NotNil(t, stmt.SecondaryTransactions)
	assert.Empty(t, stmt.SecondaryTransactions)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   \n\t "} {
		stmt := Parse(text)
		assert.Equal(t, common.EmptyStatement(), stmt)
	}
}

func TestParse_DateOnlyStatement(t *testing.T) {
	stmt := Parse(getTestTextDateOnly())

	// the "04 Jan 2024" chunk carries only a page footer and is dropped
	require.Len(t, stmt.WalletTransactions, 4)
	wallet := stmt.WalletTransactions

	assert.Equal(t, "Transfer to Mike", wallet[0].Description)
	assert.Equal(t, "240101000001", strings.Fields(wallet[0].Channel)[2])

	assert.Equal(t, "Salary ACME LTD", wallet[1].Description)
	assert.Equal(t, common.Credit, wallet[1].Type)
	assert.Equal(t, common.CategoryIncome, wallet[1].Category)

	assert.Equal(t, "Airtime MTN 08012345678", wallet[2].Description)
	assert.Equal(t, common.CategoryAirtimeData, wallet[2].Category)

	assert.Equal(t, "05 Jan 2024", wallet[3].TransDate)
	assert.Equal(t, "-4,200.00", wallet[3].DebitCredit)
	assert.Equal(t, -4200.0, wallet[3].Amount)
	assert.Equal(t, common.CategoryBetting, wallet[3].Category)

	require.Len(t, stmt.SecondaryTransactions, 2)
	secondary := stmt.SecondaryTransactions
	assert.Equal(t, "Auto-save to OWealth", secondary[0].Description)
	assert.Equal(t, common.SourceSecondary, secondary[0].Source)
	assert.Equal(t, "Bill refund credited", secondary[1].Description)
	assert.Equal(t, common.CategoryIncome, secondary[1].Category)
	assert.Equal(t, "", secondary[1].Channel)
}

func TestParse_TimestampedStatement(t *testing.T) {
	stmt := Parse(getTestTextTimestamped())

	require.NotNil(t, stmt.Header.CurrentBalance)
	assert.Equal(t, "--", *stmt.Header.CurrentBalance)
	assert.Nil(t, stmt.Header.TotalCredit)

	require.Len(t, stmt.WalletTransactions, 2)
	assert.Equal(t, "2024 Mar 05 10:11:12", stmt.WalletTransactions[0].TransDate)
	assert.Equal(t, "05 Mar 2024", stmt.WalletTransactions[0].ValueDate)
	assert.Equal(t, common.CategoryShopping, stmt.WalletTransactions[0].Category)
	assert.Equal(t, common.CategoryBillsAndUtilities, stmt.WalletTransactions[1].Category)
	assert.Equal(t, "USSD", stmt.WalletTransactions[1].Channel)

	require.Len(t, stmt.SecondaryTransactions, 1)
	assert.Equal(t, "Interest Earned", stmt.SecondaryTransactions[0].Description)
	assert.Equal(t, common.CategoryIncome, stmt.SecondaryTransactions[0].Category)
}

func TestParse_Idempotent(t *testing.T) {
	text := getTestTextDateOnly()
	assert.Equal(t, Parse(text), Parse(text))
}

func TestParse_TypeSourceAndIncomeConsistency(t *testing.T) {
	for _, text := range []string{getTestTextDateOnly(), getTestTextTimestamped()} {
		stmt := Parse(text)

		for _, tx := range stmt.Transactions() {
			if tx.Type == common.Credit {
				assert.Equal(t, common.CategoryIncome, tx.Category)
			}
			assert.Equal(t, strings.HasPrefix(tx.DebitCredit, "-"), tx.Type == common.Debit)
		}
		for _, tx := range stmt.WalletTransactions {
			assert.Equal(t, common.SourceWallet, tx.Source)
		}
		for _, tx := range stmt.SecondaryTransactions {
			assert.Equal(t, common.SourceSecondary, tx.Source)
		}
	}
}

func TestParse_OrderPreserved(t *testing.T) {
	stmt := Parse(getTestTextDateOnly())

	var dates []string
	for _, tx := range stmt.WalletTransactions {
		dates = append(dates, tx.TransDate)
	}
	assert.Equal(t, []string{"01 Jan 2024", "02 Jan 2024", "03 Jan 2024", "05 Jan 2024"}, dates)
}

func TestParser_WithOptions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	custom := Boundary{Start: "WALLET START", End: []string{"WALLET END"}}

	p := NewParser(
		WithLogger(zap.New(core)),
		WithSections(custom, Boundary{}),
		WithCategorizer(categorizer.New(categorizer.CreditIsIncome)),
		WithChannelFunc(func(string) string { return "fixed" }),
	)

	stmt := p.Parse("WALLET START 01 Jan 2024 01 Jan 2024 Transfer to Ada -1.00 2.00 App WALLET END")

	require.Len(t, stmt.WalletTransactions, 1)
	assert.Equal(t, common.CategoryOthers, stmt.WalletTransactions[0].Category)
	assert.Equal(t, "fixed", stmt.WalletTransactions[0].Channel)
	assert.Empty(t, stmt.SecondaryTransactions)
	assert.NotZero(t, logs.FilterMessage("statement parsed").Len())
}

func TestParser_ExtractSection(t *testing.T) {
	txs := NewParser().ExtractSection("01 Jan 2024 01 Jan 2024 footer only\n02 Jan 2024 02 Jan 2024 Fee -5.00 95.00 App")

	require.Len(t, txs, 1)
	assert.Equal(t, "Fee", txs[0].Description)
}

func TestParser_RecoversFromPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	p := NewParser(
		WithLogger(zap.New(core)),
		WithChannelFunc(func(string) string { panic("channel lookup failed") }),
	)

	stmt := p.Parse("Account Number 1234567890\nSummary - Wallet Balance\n01 Jan 2024 01 Jan 2024Transfer to Mike -100.00 900.00 Mobile App\nSummary - OWealth Balance")

	assert.Equal(t, common.EmptyStatement(), stmt)
	entries := logs.FilterMessage("statement parsing aborted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "channel lookup failed", entries[0].ContextMap()["panic"])
}
