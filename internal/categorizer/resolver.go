package categorizer

import (
	"context"
	"strings"

	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
)

// Resolver maps free text to a category by keyword substring matching over
// an ordered RuleSet. It is pure and safe for concurrent use.
type Resolver struct {
	rules  *RuleSet
	logger logging.Logger
}

// NewResolver creates a resolver. A nil rule set means DefaultRuleSet.
func NewResolver(rules *RuleSet, logger logging.Logger) *Resolver {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &Resolver{
		rules:  rules,
		logger: logging.OrDefault(logger),
	}
}

// Resolve returns the first category having a keyword contained in text, or
// the catch-all. It never fails.
func (r *Resolver) Resolve(text string) string {
	category, _ := r.ResolveWithKeyword(text)
	return category
}

// ResolveWithKeyword is Resolve also returning the keyword that matched.
// The keyword is empty when the catch-all was chosen.
func (r *Resolver) ResolveWithKeyword(text string) (string, string) {
	lower := strings.ToLower(text)

	for _, rule := range r.rules.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, keyword) {
				return rule.Name, keyword
			}
		}
	}

	return r.rules.CatchAll(), ""
}

// Name returns the name of this strategy for logging.
func (r *Resolver) Name() string {
	return "Keyword"
}

// Categorize implements CategorizationStrategy. found is false when only the
// catch-all applied.
func (r *Resolver) Categorize(_ context.Context, text string) (models.Category, bool, error) {
	name, keyword := r.ResolveWithKeyword(text)
	if keyword == "" {
		return models.Category{Name: name}, false, nil
	}

	r.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: r.Name()},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
		logging.Field{Key: logging.FieldCategory, Value: name},
	).Debug("Text categorized using keyword matching")

	return models.Category{Name: name, Description: "Matched keyword: " + keyword}, true, nil
}

// Rules returns the rule set the resolver walks.
func (r *Resolver) Rules() *RuleSet {
	return r.rules
}
