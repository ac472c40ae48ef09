package templates

import (
	"regexp"
	"strings"

	"fjacquet/sms-categorizer/internal/models"

	"github.com/shopspring/decimal"
)

// Details holds loosely extracted fields of a message that no template matched.
// Every field is optional.
type Details struct {
	Amount    decimal.Decimal
	HasAmount bool
	Direction models.TransactionDirection
	Date      string
	Recipient string
}

var (
	detailAmountPattern    = regexp.MustCompile(`(?i)(?:Rs\.?|INR)?\s?([\d,]+\.\d{2})`)
	detailDebitPattern     = regexp.MustCompile(`(?i)debited|spent|sent`)
	detailCreditPattern    = regexp.MustCompile(`(?i)credited|received`)
	detailDatePattern      = regexp.MustCompile(`\d{2}[-/][A-Za-z]{3}[-/]\d{2}|\d{2}[-/]\d{2}[-/]\d{4}`)
	detailRecipientPattern = regexp.MustCompile(`(?:to|TO|at|AT|by|BY)\s+([A-Z0-9 .&-]{3,})`)
)

// ExtractDetails applies generic, source-independent heuristics to text.
// Unlike the templates, the amount pattern accepts thousands separators.
func ExtractDetails(text string) Details {
	var d Details

	if m := detailAmountPattern.FindStringSubmatch(text); m != nil {
		if amount, err := models.ParseAmount(m[1]); err == nil {
			d.Amount = amount
			d.HasAmount = true
		}
	}

	switch {
	case detailDebitPattern.MatchString(text):
		d.Direction = models.DirectionDebit
	case detailCreditPattern.MatchString(text):
		d.Direction = models.DirectionCredit
	default:
		d.Direction = models.DirectionUnknown
	}

	d.Date = detailDatePattern.FindString(text)

	if m := detailRecipientPattern.FindStringSubmatch(text); m != nil {
		d.Recipient = strings.TrimSpace(m[1])
	}

	return d
}

// IsEmpty returns true when no field could be extracted.
func (d Details) IsEmpty() bool {
	return !d.HasAmount && !d.Direction.IsKnown() && d.Date == "" && d.Recipient == ""
}
