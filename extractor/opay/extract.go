// Package opay extracts a categorized ledger from the decoded text of an OPay account
// statement: header labels, the wallet and OWealth sections, one chunk per
// transaction and the fields of each chunk.
package opay

import (
	"strings"

	"github.com/aqlanhadi/ledgr/categorizer"
	"github.com/aqlanhadi/ledgr/extractor/common"
	"go.uber.org/zap"
)

type Parser struct {
	logger      *zap.Logger
	categorizer *categorizer.Categorizer
	wallet      Boundary
	secondary   Boundary
	channel     ChannelFunc
}

type Option func(*Parser)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithCategorizer(c *categorizer.Categorizer) Option {
	return func(p *Parser) {
		if c != nil {
			p.categorizer = c
		}
	}
}

// WithSections overrides the section markers.
func WithSections(wallet, secondary Boundary) Option {
	return func(p *Parser) {
		p.wallet = wallet
		p.secondary = secondary
	}
}

// WithChannelFunc swaps the channel heuristic.
func WithChannelFunc(fn ChannelFunc) Option {
	return func(p *Parser) {
		if fn != nil {
			p.channel = fn
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:      zap.NewNop(),
		categorizer: categorizer.New(),
		wallet:      WalletSection,
		secondary:   SecondarySection,
		channel:     ExtractChannel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse runs the full pipeline with the default configuration.
func Parse(text string) common.Statement {
	return NewParser().Parse(text)
}

// Parse converts statement text into a Statement. It never fails: unusable input
// degrades to an empty statement and malformed chunks are dropped.
func (p *Parser) Parse(text string) (statement common.Statement) {
	statement = common.EmptyStatement()
	if strings.TrimSpace(text) == "" {
		p.logger.Debug("empty statement text")
		return statement
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("statement parsing aborted", zap.Any("panic", r))
			statement = common.EmptyStatement()
		}
	}()

	statement.Header = ExtractHeader(text)

	walletBlock, secondaryBlock := SplitSections(text, p.wallet, p.secondary)
	statement.WalletTransactions = p.categorizer.CategorizeAll(p.extractSection(walletBlock, common.SourceWallet), common.SourceWallet)
	statement.SecondaryTransactions = p.categorizer.CategorizeAll(p.extractSection(secondaryBlock, common.SourceSecondary), common.SourceSecondary)

	p.logger.Debug("statement parsed",
		zap.Bool("header_found", !statement.Header.IsEmpty()),
		zap.Int("wallet_transactions", len(statement.WalletTransactions)),
		zap.Int("secondary_transactions", len(statement.SecondaryTransactions)),
	)

	return statement
}

// ExtractSection tokenizes and parses one raw section block.
func (p *Parser) ExtractSection(block string) []common.RawTransaction {
	return p.extractSection(block, "")
}

func (p *Parser) extractSection(block string, source common.Source) []common.RawTransaction {
	transactions := []common.RawTransaction{}
	if block == "" {
		return transactions
	}

	layout := DetectLayout(block)
	chunks := TokenizeLayout(block, layout)

	dropped := 0
	for _, chunk := range chunks {
		tx, ok := parseChunk(chunk, p.channel)
		if !ok {
			dropped++
			continue
		}
		transactions = append(transactions, tx)
	}

	p.logger.Debug("section extracted",
		zap.String("source", string(source)),
		zap.Stringer("layout", layout),
		zap.Int("chunks", len(chunks)),
		zap.Int("transactions", len(transactions)),
		zap.Int("dropped", dropped),
	)

	return transactions
}
