// Package categorizer assigns each transaction one label from the fixed taxonomy
// using an ordered rule table. The first matching rule wins.
package categorizer

import (
	"strings"

	"github.com/aqlanhadi/ledgr/extractor/common"
)

// Rule pairs a predicate with the category it assigns.
type Rule struct {
	Category common.Category
	Match    func(tx common.RawTransaction) bool
}

// CreditIsIncome classifies every credit as income before any keyword is consulted.
var CreditIsIncome = Rule{
	Category: common.CategoryIncome,
	Match: func(tx common.RawTransaction) bool {
		return tx.Type == common.Credit
	},
}

// Keywords builds a rule matching any of the words as a case-insensitive substring of
// the description.
func Keywords(category common.Category, words ...string) Rule {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lowered = append(lowered, w)
		}
	}

	return Rule{
		Category: category,
		Match: func(tx common.RawTransaction) bool {
			return containsAny(strings.ToLower(tx.Description), lowered)
		},
	}
}

// DefaultRules is the rule table for OPay statements.
func DefaultRules() []Rule {
	return []Rule{
		CreditIsIncome,
		Keywords(common.CategoryAirtimeData, "airtime", "mobile data"),
		Keywords(common.CategoryBetting, "betting", "bet9ja", "nairabet"),
		Keywords(common.CategoryShopping, "shopping", "jumia", "supermarket"),
		Keywords(common.CategoryTransfers, "transfer to", "sent to"),
		Keywords(common.CategoryBillsAndUtilities, "tv", "electricity", "bill"),
	}
}

type Categorizer struct {
	rules []Rule
}

// New creates a Categorizer. With no rules it uses DefaultRules.
func New(rules ...Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Categorizer{rules: rules}
}

// Categorize labels one transaction and tags it with the section it came from.
func (c *Categorizer) Categorize(tx common.RawTransaction, source common.Source) common.CategorizedTransaction {
	return common.CategorizedTransaction{
		RawTransaction: tx,
		Category:       c.classify(tx),
		Source:         source,
	}
}

// CategorizeAll preserves input order.
func (c *Categorizer) CategorizeAll(txs []common.RawTransaction, source common.Source) []common.CategorizedTransaction {
	out := make([]common.CategorizedTransaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, c.Categorize(tx, source))
	}
	return out
}

func (c *Categorizer) classify(tx common.RawTransaction) common.Category {
	for _, rule := range c.rules {
		if rule.Match != nil && rule.Match(tx) {
			return rule.Category
		}
	}
	return common.CategoryOthers
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
