package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aqlanhadi/ledgr/extractor/common"
)

func WriteJSON(out io.Writer, transactions []common.CategorizedTransaction) error {
	if transactions == nil {
		transactions = []common.CategorizedTransaction{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(transactions)
}

// ReadJSON accepts only a top-level array of transactions.
func ReadJSON(in io.Reader) ([]common.CategorizedTransaction, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidFormat)
	}

	transactions := []common.CategorizedTransaction{}
	if err := json.Unmarshal(trimmed, &transactions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return transactions, nil
}
