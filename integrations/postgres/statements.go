package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResult counts how many transactions of a statement were stored and how many were
// already present.
type SaveResult struct {
	StatementID uuid.UUID
	Inserted    int
	Skipped     int
}

func insertStatementQuery(id, accountID uuid.UUID, stmt common.Statement) (string, []interface{}, error) {
	return psql.Insert("statements").
		Columns("id", "account_id", "source", "current_balance", "total_credit", "total_debit").
		Values(id, accountID, stmt.Source, stmt.Header.CurrentBalance, stmt.Header.TotalCredit, stmt.Header.TotalDebit).
		ToSql()
}

func createStatement(ctx context.Context, q querier, accountID uuid.UUID, stmt common.Statement) (uuid.UUID, error) {
	id := uuid.New()
	query, args, err := insertStatementQuery(id, accountID, stmt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build statement query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create statement: %w", err)
	}
	return id, nil
}

// SaveStatement stores a statement and its transactions in one database transaction.
// Transactions already stored for the account are skipped.
func (db *DB) SaveStatement(ctx context.Context, stmt common.Statement) (SaveResult, error) {
	account, err := AccountFromHeader(stmt.Header)
	if err != nil {
		return SaveResult{}, err
	}

	var result SaveResult
	err = pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		accountID, err := getOrCreateAccount(ctx, tx, account)
		if err != nil {
			return err
		}

		result.StatementID, err = createStatement(ctx, tx, accountID, stmt)
		if err != nil {
			return err
		}

		result.Inserted, result.Skipped, err = insertTransactions(ctx, tx, accountID, result.StatementID, stmt.Transactions())
		return err
	})
	if err != nil {
		return SaveResult{}, err
	}

	return result, nil
}

func deleteStatementsQuery(accountNumber, source string) (string, []interface{}, error) {
	return psql.Delete("statements").
		Where("account_id IN (SELECT id FROM accounts WHERE account_number = ?)", accountNumber).
		Where(sq.Eq{"source": source}).
		ToSql()
}

// DeleteStatements removes every stored import of a statement file for an account. Their
// transactions go with them (cascade).
func (db *DB) DeleteStatements(ctx context.Context, accountNumber, source string) (int64, error) {
	query, args, err := deleteStatementsQuery(accountNumber, source)
	if err != nil {
		return 0, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete statements: %w", err)
	}
	return tag.RowsAffected(), nil
}
