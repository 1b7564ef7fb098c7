// Package ledger converts categorized transactions to and from their tabular and JSON
// file forms, and derives spending summaries from them.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidFormat   = errors.New("invalid file format")
	ErrUnknownCategory = errors.New("unknown category")
)

// Columns is the fixed column order of the tabular export.
var Columns = []string{
	"transDate",
	"valueDate",
	"description",
	"debitCredit",
	"amount",
	"balance",
	"channel",
	"transactionReference",
	"type",
	"category",
}

const utf8BOM = "\uFEFF"

// WriteCSV writes the header followed by one row per transaction. Absent values are
// written as empty fields so every row has len(Columns) fields.
func WriteCSV(out io.Writer, transactions []common.CategorizedTransaction) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, tx := range transactions {
		if err := writer.Write(toRecord(tx)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func toRecord(tx common.CategorizedTransaction) []string {
	return []string{
		tx.TransDate,
		tx.ValueDate,
		tx.Description,
		tx.DebitCredit,
		decimal.NewFromFloat(tx.Amount).String(),
		tx.Balance,
		tx.Channel,
		tx.Reference,
		string(tx.Type),
		string(tx.Category),
	}
}

// ReadCSV parses a tabular export. Columns are located by header name, so files with
// reordered columns are accepted as long as every column is present.
func ReadCSV(in io.Reader) ([]common.CategorizedTransaction, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrInvalidFormat, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidFormat, col)
		}
	}

	transactions := []common.CategorizedTransaction{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, line, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, got %d", ErrInvalidFormat, line, len(header), len(record))
		}

		tx, err := fromRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func fromRecord(record []string, index map[string]int) (common.CategorizedTransaction, error) {
	field := func(name string) string {
		return record[index[name]]
	}

	tx := common.CategorizedTransaction{
		RawTransaction: common.RawTransaction{
			TransDate:   field("transDate"),
			ValueDate:   field("valueDate"),
			Description: field("description"),
			DebitCredit: field("debitCredit"),
			Balance:     field("balance"),
			Channel:     field("channel"),
		},
		Reference: field("transactionReference"),
	}

	amountText := field("amount")
	if amountText == "" {
		amountText = tx.DebitCredit
	}
	amount, err := common.CleanDecimal(amountText)
	if err != nil {
		return tx, fmt.Errorf("%w: amount %q: %v", ErrInvalidFormat, amountText, err)
	}
	tx.Amount = amount.InexactFloat64()

	switch typ := common.TransactionType(field("type")); typ {
	case common.Credit, common.Debit:
		tx.Type = typ
	case "":
		tx.Type = common.TypeOf(tx.DebitCredit)
	default:
		return tx, fmt.Errorf("%w: type %q", ErrInvalidFormat, typ)
	}

	category, ok := common.ParseCategory(field("category"))
	if !ok {
		return tx, fmt.Errorf("%w: %q", ErrUnknownCategory, field("category"))
	}
	tx.Category = category

	return tx, nil
}
