package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var transactionColumns = []string{
	"id", "account_id", "statement_id", "sequence", "source",
	"trans_date", "value_date", "description", "debit_credit", "amount",
	"balance", "channel", "reference", "type", "category",
}

const naturalKeyConflict = "ON CONFLICT (account_id, source, trans_date, value_date, description, debit_credit, balance) DO NOTHING"

// storedAmount prefers the printed amount so NUMERIC keeps the exact cents.
func storedAmount(tx common.CategorizedTransaction) decimal.Decimal {
	if amount, err := common.CleanDecimal(tx.DebitCredit); err == nil && tx.DebitCredit != "" {
		return amount
	}
	return decimal.NewFromFloat(tx.Amount)
}

func insertTransactionQuery(id, accountID, statementID uuid.UUID, sequence int, tx common.CategorizedTransaction) (string, []interface{}, error) {
	return psql.Insert("transactions").
		Columns(transactionColumns...).
		Values(
			id, accountID, statementID, sequence, string(tx.Source),
			tx.TransDate, tx.ValueDate, tx.Description, tx.DebitCredit, storedAmount(tx).String(),
			tx.Balance, tx.Channel, tx.Reference, string(tx.Type), string(tx.Category),
		).
		Suffix(naturalKeyConflict).
		ToSql()
}

// insertTransactions batch inserts the transactions of one statement. Rows colliding with
// the natural key are skipped by ON CONFLICT DO NOTHING and counted as skipped.
func insertTransactions(ctx context.Context, q querier, accountID, statementID uuid.UUID, transactions []common.CategorizedTransaction) (inserted, skipped int, err error) {
	if len(transactions) == 0 {
		return 0, 0, nil
	}

	batch := &pgx.Batch{}
	for i, tx := range transactions {
		query, args, err := insertTransactionQuery(uuid.New(), accountID, statementID, i, tx)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to build transaction query: %w", err)
		}
		batch.Queue(query, args...)
	}

	br := q.SendBatch(ctx, batch)
	defer br.Close()

	for range transactions {
		tag, err := br.Exec()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert transaction: %w", err)
		}
		if tag.RowsAffected() == 0 {
			skipped++
		} else {
			inserted++
		}
	}

	return inserted, skipped, nil
}

func listTransactionsQuery(accountNumber string) (string, []interface{}, error) {
	return psql.Select(
		"t.trans_date", "t.value_date", "t.description", "t.debit_credit", "t.amount::text",
		"t.balance", "t.channel", "t.reference", "t.type", "t.category", "t.source",
	).
		From("transactions t").
		Join("accounts a ON a.id = t.account_id").
		Join("statements s ON s.id = t.statement_id").
		Where(sq.Eq{"a.account_number": accountNumber}).
		OrderBy("s.imported_at", "t.statement_id", "t.sequence").
		ToSql()
}

// ListTransactions returns every stored transaction of an account in import order.
func (db *DB) ListTransactions(ctx context.Context, accountNumber string) ([]common.CategorizedTransaction, error) {
	query, args, err := listTransactionsQuery(accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []common.CategorizedTransaction{}
	for rows.Next() {
		var tx common.CategorizedTransaction
		var amount, typ, category, source string
		if err := rows.Scan(
			&tx.TransDate, &tx.ValueDate, &tx.Description, &tx.DebitCredit, &amount,
			&tx.Balance, &tx.Channel, &tx.Reference, &typ, &category, &source,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
		}
		tx.Amount = value.InexactFloat64()
		tx.Type = common.TransactionType(typ)
		tx.Category = common.Category(category)
		tx.Source = common.Source(source)

		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}
