package cmd

import (
	"fmt"
	"io"

	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/aqlanhadi/ledgr/ledger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	summaryPath           string
	summaryBudgetCategory string
	summaryBudget         string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize income, expenses and budget usage",
	Long: `Prints income, expense and net totals for a statement, broken down by
section and category. With --budget, also reports spending against a limit.

Examples:
  ledgr summary -f statement.pdf
  ledgr summary -f statement.pdf --budget-category Betting --budget 5000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var budget *ledger.Budget
		if summaryBudget != "" {
			limit, err := decimal.NewFromString(summaryBudget)
			if err != nil {
				return fmt.Errorf("invalid budget %q: %w", summaryBudget, err)
			}
			b, err := ledger.NewBudget(summaryBudgetCategory, limit)
			if err != nil {
				return err
			}
			budget = &b
		}

		ext, err := newExtractor()
		if err != nil {
			return err
		}

		transactions, err := loadTransactions(ext, summaryPath)
		if err != nil {
			return err
		}

		writeSummary(cmd.OutOrStdout(), transactions, budget)
		return nil
	},
}

func writeSummary(out io.Writer, transactions []common.CategorizedTransaction, budget *ledger.Budget) {
	summary := ledger.Summarize(transactions)

	fmt.Fprintf(out, "Transactions:   %d\n", summary.Count)
	fmt.Fprintf(out, "Total income:   %s\n", summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(out, "Total expenses: %s\n", summary.TotalExpenses.StringFixed(2))
	fmt.Fprintf(out, "Net:            %s\n", summary.Net.StringFixed(2))

	for _, source := range []common.Source{common.SourceWallet, common.SourceSecondary} {
		if amount, ok := summary.BySource[source]; ok {
			fmt.Fprintf(out, "  %-14s %s\n", source+":", amount.StringFixed(2))
		}
	}

	fmt.Fprintln(out, "By category:")
	for _, category := range common.Categories {
		if amount, ok := summary.ByCategory[category]; ok {
			fmt.Fprintf(out, "  %-18s %s\n", string(category)+":", amount.StringFixed(2))
		}
	}

	if budget == nil {
		return
	}

	status := ledger.CheckBudget(transactions, *budget)
	fmt.Fprintf(out, "Budget (%s): spent %s of %s (%s%%), remaining %s\n",
		status.Category,
		status.Spent.StringFixed(2),
		status.Limit.StringFixed(2),
		status.Percentage.StringFixed(2),
		status.Remaining.StringFixed(2),
	)
	if status.OverBudget {
		fmt.Fprintln(out, "Over budget!")
	}
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&summaryPath, "file", "f", "", "Statement, folder, or previous export to summarize (required)")
	summaryCmd.Flags().StringVar(&summaryBudgetCategory, "budget-category", ledger.AllCategories, "Category the budget applies to, or All")
	summaryCmd.Flags().StringVar(&summaryBudget, "budget", "", "Spending limit to check against")

	summaryCmd.MarkFlagRequired("file")
}
