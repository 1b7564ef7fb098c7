package ledger

import (
	"errors"
	"fmt"

	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/shopspring/decimal"
)

type Summary struct {
	Count         int                                 `json:"count"`
	TotalIncome   decimal.Decimal                     `json:"totalIncome"`
	TotalExpenses decimal.Decimal                     `json:"totalExpenses"`
	Net           decimal.Decimal                     `json:"net"`
	BySource      map[common.Source]decimal.Decimal   `json:"bySource"`
	ByCategory    map[common.Category]decimal.Decimal `json:"byCategory"`
}

// exactAmount prefers the printed amount over the float.
func exactAmount(tx common.CategorizedTransaction) decimal.Decimal {
	if tx.DebitCredit != "" {
		if amount, err := common.CleanDecimal(tx.DebitCredit); err == nil {
			return amount
		}
	}
	return decimal.NewFromFloat(tx.Amount)
}

// Summarize totals income and expenses. Expenses and category totals are absolute
// values; per-source totals are signed by transaction type.
func Summarize(transactions []common.CategorizedTransaction) Summary {
	summary := Summary{
		Count:      len(transactions),
		BySource:   map[common.Source]decimal.Decimal{},
		ByCategory: map[common.Category]decimal.Decimal{},
	}

	for _, tx := range transactions {
		amount := exactAmount(tx).Abs()
		signed := amount
		if tx.Type == common.Debit {
			summary.TotalExpenses = summary.TotalExpenses.Add(amount)
			signed = amount.Neg()
		} else {
			summary.TotalIncome = summary.TotalIncome.Add(amount)
		}

		if tx.Source != "" {
			summary.BySource[tx.Source] = summary.BySource[tx.Source].Add(signed)
		}
		summary.ByCategory[tx.Category] = summary.ByCategory[tx.Category].Add(amount)
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary
}

// AllCategories budgets every debit regardless of category.
const AllCategories = "All"

var ErrInvalidBudget = errors.New("invalid budget")

type Budget struct {
	Category string
	Limit    decimal.Decimal
}

func NewBudget(category string, limit decimal.Decimal) (Budget, error) {
	if category != AllCategories {
		if _, ok := common.ParseCategory(category); !ok {
			return Budget{}, fmt.Errorf("%w: %w: %q", ErrInvalidBudget, ErrUnknownCategory, category)
		}
	}
	if !limit.IsPositive() {
		return Budget{}, fmt.Errorf("%w: limit must be positive, got %s", ErrInvalidBudget, limit)
	}
	return Budget{Category: category, Limit: limit}, nil
}

type BudgetStatus struct {
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	OverBudget bool            `json:"overBudget"`
}

// CheckBudget measures debit spending in the budget's category against its limit.
func CheckBudget(transactions []common.CategorizedTransaction, budget Budget) BudgetStatus {
	spent := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != common.Debit {
			continue
		}
		if budget.Category != AllCategories && string(tx.Category) != budget.Category {
			continue
		}
		spent = spent.Add(exactAmount(tx).Abs())
	}

	status := BudgetStatus{
		Category:  budget.Category,
		Limit:     budget.Limit,
		Spent:     spent,
		Remaining: budget.Limit.Sub(spent),
	}
	if budget.Limit.IsPositive() {
		status.Percentage = spent.Div(budget.Limit).Mul(decimal.NewFromInt(100)).Round(2)
	}
	status.OverBudget = spent.GreaterThan(budget.Limit)
	return status
}
