// Package templates holds the ordered registry of source-specific message
// templates and the matcher that turns a notification into a TransactionRecord.
package templates

import (
	"regexp"
	"strings"

	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"
)

// ExtractFunc builds a record from the submatches of a template pattern.
// groups[0] is the whole match.
type ExtractFunc func(groups []string) (models.TransactionRecord, error)

// Template is one (cheap filter, pattern, extractor) entry of the registry.
type Template struct {
	Name      string // Unique name, e.g. "HDFC_DEBIT"
	Source    string // Issuing bank or service
	Direction models.TransactionDirection
	Keyword   string // Case-sensitive substring required before Pattern is tried
	Pattern   *regexp.Regexp
	Extract   ExtractFunc
}

// Apply runs the template against text. The keyword is checked before the
// pattern. It returns ok=false when the template does not apply and an
// *parsererror.ExtractionError when it applies but a field cannot be converted.
func (t Template) Apply(text string) (models.TransactionRecord, bool, error) {
	if t.Keyword != "" && !strings.Contains(text, t.Keyword) {
		return models.TransactionRecord{}, false, nil
	}

	groups := t.Pattern.FindStringSubmatch(text)
	if groups == nil {
		return models.TransactionRecord{}, false, nil
	}

	record, err := t.Extract(groups)
	if err != nil {
		return models.TransactionRecord{}, false, err
	}

	record.Direction = t.Direction
	record.Source = t.Name
	return record, true, nil
}

// Fields maps capture group numbers to record fields. It covers every shipped
// template; custom templates may supply their own ExtractFunc instead.
type Fields struct {
	Amount       int
	Counterparty int
	Date         int
}

// Extractor returns an ExtractFunc that reads the configured groups. The amount
// is always parsed to a decimal; a value that does not parse rejects the match.
func (f Fields) Extractor(templateName string) ExtractFunc {
	return func(groups []string) (models.TransactionRecord, error) {
		raw := group(groups, f.Amount)
		amount, err := models.ParseAmount(raw)
		if err != nil {
			return models.TransactionRecord{}, &parsererror.ExtractionError{
				Template: templateName,
				Field:    "amount",
				Value:    raw,
				Err:      err,
			}
		}

		return models.TransactionRecord{
			Amount:       amount,
			Counterparty: strings.TrimSpace(group(groups, f.Counterparty)),
			Date:         group(groups, f.Date),
		}, nil
	}
}

func group(groups []string, i int) string {
	if i <= 0 || i >= len(groups) {
		return ""
	}
	return groups[i]
}
