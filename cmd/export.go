package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqlanhadi/ledgr/extractor"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/aqlanhadi/ledgr/ledger"
	"github.com/spf13/cobra"
)

var (
	exportPath   string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export transactions as CSV or JSON",
	Long: `Exports the categorized transactions of a statement, a folder of statements,
or a previous CSV/JSON export.

Examples:
  ledgr export -f statement.pdf --format csv -o january.csv
  ledgr export -f january.csv --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ext, err := newExtractor()
		if err != nil {
			return err
		}

		transactions, err := loadTransactions(ext, exportPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		return writeTransactions(out, exportFormat, transactions)
	},
}

func writeTransactions(out io.Writer, format string, transactions []common.CategorizedTransaction) error {
	switch strings.ToLower(format) {
	case "csv":
		return ledger.WriteCSV(out, transactions)
	case "json":
		return ledger.WriteJSON(out, transactions)
	default:
		return fmt.Errorf("unsupported format %q (want csv or json)", format)
	}
}

// loadTransactions reads transactions from a statement, a directory of statements, or a
// previous CSV or JSON export.
func loadTransactions(ext *extractor.Extractor, path string) ([]common.CategorizedTransaction, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		transactions := []common.CategorizedTransaction{}
		for _, entry := range entries {
			if entry.IsDir() || !extractor.IsSupported(entry.Name()) {
				continue
			}
			statement := ext.ProcessFile(filepath.Join(path, entry.Name()))
			transactions = append(transactions, statement.Transactions()...)
		}
		return transactions, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		var transactions []common.CategorizedTransaction
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			transactions, err = ledger.ReadCSV(f)
		} else {
			transactions, err = ledger.ReadJSON(f)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", filepath.Base(path), err)
		}
		return transactions, nil
	}

	return ext.ProcessFile(path).Transactions(), nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportPath, "file", "f", "", "Statement, folder, or previous export to read (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")

	exportCmd.MarkFlagRequired("file")
}
