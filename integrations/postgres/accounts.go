package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/google/uuid"
)

var ErrNoAccountNumber = errors.New("no account number extracted")

// Account is the identity a statement is filed under.
type Account struct {
	Number string
	Name   string
}

// AccountFromHeader reads the account identity from a statement header.
func AccountFromHeader(h common.HeaderData) (Account, error) {
	if h.AccountNumber == nil || *h.AccountNumber == "" {
		return Account{}, ErrNoAccountNumber
	}
	account := Account{Number: *h.AccountNumber}
	if h.AccountName != nil {
		account.Name = *h.AccountName
	}
	return account, nil
}

func upsertAccountQuery(id uuid.UUID, account Account) (string, []interface{}, error) {
	return psql.Insert("accounts").
		Columns("id", "account_number", "account_name").
		Values(id, account.Number, account.Name).
		// A blank name never overwrites a known one
		Suffix(`ON CONFLICT (account_number) DO UPDATE
			SET account_name = COALESCE(NULLIF(EXCLUDED.account_name, ''), accounts.account_name),
			    updated_at = NOW()
			RETURNING id`).
		ToSql()
}

// getOrCreateAccount finds an existing account by number or creates a new one
func getOrCreateAccount(ctx context.Context, q querier, account Account) (uuid.UUID, error) {
	query, args, err := upsertAccountQuery(uuid.New(), account)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build account query: %w", err)
	}

	var id uuid.UUID
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert account: %w", err)
	}
	return id, nil
}
