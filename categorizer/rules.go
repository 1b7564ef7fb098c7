package categorizer

import (
	"fmt"

	"github.com/aqlanhadi/ledgr/extractor/common"
)

// KeywordRule is the configuration form of a keyword rule.
type KeywordRule struct {
	Category string   `mapstructure:"category"`
	Keywords []string `mapstructure:"keywords"`
}

// FromKeywordRules builds a rule table from configuration. The credit rule is always
// evaluated first so a configured table can never reclassify income.
func FromKeywordRules(defs []KeywordRule) ([]Rule, error) {
	rules := []Rule{CreditIsIncome}
	for i, def := range defs {
		category, ok := common.ParseCategory(def.Category)
		if !ok {
			return nil, fmt.Errorf("rule %d: unknown category %q", i, def.Category)
		}
		if len(def.Keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no keywords", i, def.Category)
		}
		rules = append(rules, Keywords(category, def.Keywords...))
	}
	return rules, nil
}
