package extractor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aqlanhadi/ledgr/extractor/common"
	"github.com/aqlanhadi/ledgr/extractor/opay"
	"go.uber.org/zap"
)

// Extractor decodes uploaded statements and runs them through the OPay pipeline.
type Extractor struct {
	parser *opay.Parser
	logger *zap.Logger
}

func New(logger *zap.Logger, opts ...opay.Option) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]opay.Option{opay.WithLogger(logger)}, opts...)
	return &Extractor{
		parser: opay.NewParser(opts...),
		logger: logger,
	}
}

// IsSupported reports whether a file name looks like a statement we can read.
func IsSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".txt":
		return true
	}
	return false
}

// ProcessText parses already decoded statement text.
func (e *Extractor) ProcessText(text, filename string) common.Statement {
	statement := e.parser.Parse(text)
	statement.Source = sourceName(filename)
	return statement
}

// ProcessReader decodes a PDF (or reads a .txt upload verbatim) and parses it.
// Decoding failures yield an empty statement.
func (e *Extractor) ProcessReader(r io.Reader, filename string) common.Statement {
	var text string
	var err error

	if strings.EqualFold(filepath.Ext(filename), ".txt") {
		var b []byte
		b, err = io.ReadAll(r)
		text = string(b)
	} else {
		text, err = common.ExtractTextFromPDFReader(r, e.logger)
	}

	if err != nil {
		e.logger.Warn("could not decode statement", zap.String("file", filename), zap.Error(err))
		statement := common.EmptyStatement()
		statement.Source = sourceName(filename)
		return statement
	}

	return e.ProcessText(text, filename)
}

func (e *Extractor) ProcessFile(path string) common.Statement {
	f, err := os.Open(path)
	if err != nil {
		e.logger.Warn("could not open statement", zap.String("file", path), zap.Error(err))
		statement := common.EmptyStatement()
		statement.Source = sourceName(path)
		return statement
	}
	defer f.Close()

	return e.ProcessReader(f, path)
}

// ExecuteAgainstPath parses a file, or every supported file in a directory, and writes
// the statements as JSON to out.
func (e *Extractor) ExecuteAgainstPath(path string, out io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !info.IsDir() {
		e.logger.Info("scanning file", zap.String("path", path))
		return json.NewEncoder(out).Encode(e.ProcessFile(path))
	}

	e.logger.Info("scanning directory", zap.String("path", path))
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	result := []common.Statement{}
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		statement := e.ProcessFile(filepath.Join(path, entry.Name()))
		if len(statement.WalletTransactions)+len(statement.SecondaryTransactions) == 0 {
			e.logger.Debug("skipping statement without transactions",
				zap.String("file", entry.Name()),
				zap.Bool("header_found", !statement.Header.IsEmpty()),
			)
			continue
		}
		result = append(result, statement)
	}

	return json.NewEncoder(out).Encode(result)
}

// CreateFinalOutput shapes a statement for output. transactionOnly yields the wallet
// and secondary transactions concatenated; statementOnly drops the transactions.
func CreateFinalOutput(statement common.Statement, transactionOnly, statementOnly bool) interface{} {
	if transactionOnly {
		return statement.Transactions()
	}

	output := map[string]interface{}{
		"header": statement.Header,
	}
	if statement.Source != "" {
		output["source"] = statement.Source
	}
	if statementOnly {
		return output
	}

	output["walletTransactions"] = statement.WalletTransactions
	output["secondaryTransactions"] = statement.SecondaryTransactions
	return output
}

func sourceName(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
