package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aqlanhadi/ledgr/extractor"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"go.uber.org/zap"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int
	Failed    int
	Inserted  int
	Skipped   int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Force     bool // Replace earlier imports of the same file instead of skipping duplicates
	Extractor *extractor.Extractor
	Logger    *zap.Logger
}

// statementStore is the storage side of an import.
type statementStore interface {
	SaveStatement(ctx context.Context, stmt common.Statement) (SaveResult, error)
	DeleteStatements(ctx context.Context, accountNumber, source string) (int64, error)
}

type importer struct {
	store     statementStore
	force     bool
	extractor *extractor.Extractor
	logger    *zap.Logger
}

func newImporter(store statementStore, opts ImportOptions) *importer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ext := opts.Extractor
	if ext == nil {
		ext = extractor.New(logger)
	}
	return &importer{store: store, force: opts.Force, extractor: ext, logger: logger}
}

// importFile parses one statement file and stores it
func (im *importer) importFile(ctx context.Context, filePath string, result *ImportResult) {
	fileName := filepath.Base(filePath)
	fail := func(format string, args ...interface{}) {
		msg := fmt.Sprintf("%s: %s", fileName, fmt.Sprintf(format, args...))
		im.logger.Warn("import failed", zap.String("file", fileName), zap.String("reason", msg))
		result.Failed++
		result.Errors = append(result.Errors, msg)
	}

	statement := im.extractor.ProcessFile(filePath)
	if len(statement.WalletTransactions)+len(statement.SecondaryTransactions) == 0 {
		fail("no transactions extracted")
		return
	}

	if im.force {
		account, err := AccountFromHeader(statement.Header)
		if err != nil {
			fail("%v", err)
			return
		}
		removed, err := im.store.DeleteStatements(ctx, account.Number, statement.Source)
		if err != nil {
			fail("%v", err)
			return
		}
		im.logger.Debug("replaced earlier imports", zap.String("file", fileName), zap.Int64("statements", removed))
	}

	saved, err := im.store.SaveStatement(ctx, statement)
	if err != nil {
		fail("%v", err)
		return
	}

	im.logger.Info("imported statement",
		zap.String("file", fileName),
		zap.Int("inserted", saved.Inserted),
		zap.Int("skipped", saved.Skipped),
	)
	result.Processed++
	result.Inserted += saved.Inserted
	result.Skipped += saved.Skipped
}

// importDirectory processes all supported statement files in a directory
func (im *importer) importDirectory(ctx context.Context, dirPath string, result *ImportResult) error {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var dataFiles []string
	for _, e := range entries {
		if e.IsDir() || !extractor.IsSupported(e.Name()) {
			continue
		}
		dataFiles = append(dataFiles, filepath.Join(dirPath, e.Name()))
	}

	im.logger.Info("scanning directory", zap.String("path", dirPath), zap.Int("files", len(dataFiles)))

	for _, filePath := range dataFiles {
		if err := ctx.Err(); err != nil {
			return err
		}
		im.importFile(ctx, filePath, result)
	}
	return nil
}

func (im *importer) run(ctx context.Context, path string) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	result := &ImportResult{}
	if info.IsDir() {
		if err := im.importDirectory(ctx, path, result); err != nil {
			return nil, err
		}
		return result, nil
	}

	im.importFile(ctx, path, result)
	return result, nil
}

// Import handles both file and directory imports
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	return newImporter(db, opts).run(ctx, path)
}
