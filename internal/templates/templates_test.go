package templates

import (
	"errors"
	"regexp"
	"testing"

	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_DefaultTemplates(t *testing.T) {
	tests := []struct {
		name         string
		direction    models.TransactionDirection
		text         string
		source       string
		amount       string
		counterparty string
		date         string
	}{
		{
			name:         "HDFC card spend",
			direction:    models.DirectionDebit,
			text:         "Spent Rs.500 On HDFC Bank Card 1234 At AMAZON On 12-01-23.",
			source:       "HDFC_DEBIT",
			amount:       "500",
			counterparty: "AMAZON",
			date:         "12-01-23",
		},
		{
			name:         "ICICI account debit",
			direction:    models.DirectionDebit,
			text:         "ICICI Bank Acct XX123 debited for Rs 250.00 on 05-Feb-23; SWIGGY credited. UPI:312345678901. Call 18002662 for dispute.",
			source:       "ICICI_DEBIT",
			amount:       "250.00",
			counterparty: "SWIGGY",
			date:         "05-Feb-23",
		},
		{
			name:         "SBI UPI debit",
			direction:    models.DirectionDebit,
			text:         "Dear UPI user A/C X1234 debited by 120.0 on date 10Mar23 trf to RAPIDO Refno 307012345678. If not u? call 1800111109. -SBI",
			source:       "SBI_DEBIT",
			amount:       "120.0",
			counterparty: "RAPIDO",
			date:         "10Mar23",
		},
		{
			name:         "ICICI UPI credit",
			direction:    models.DirectionCredit,
			text:         "ICICI Bank Account XX123 credited with Rs 2000.00 on 20-Apr-23 from ravi@upi. UPI:311234567890-ICICI Bank.",
			source:       "ICICI_CREDIT",
			amount:       "2000.00",
			counterparty: "ravi@upi",
			date:         "20-Apr-23",
		},
		{
			name:         "HDFC credit alert",
			direction:    models.DirectionCredit,
			text:         "Credit Alert! Rs.1500.00 credited to HDFC Bank A/c XX1234 on 15-03-23 from VPA john@okaxis (UPI 312345678901)",
			source:       "HDFC_CREDIT",
			amount:       "1500.00",
			counterparty: "john@okaxis",
			date:         "15-03-23",
		},
		{
			name:         "SBI transfer credit",
			direction:    models.DirectionCredit,
			text:         "Dear SBI User, your A/c X5678-credited by Rs.3500 on 01May23 transfer from PRIYA SHARMA Ref No 312112345678 -SBI",
			source:       "SBI_CREDIT",
			amount:       "3500",
			counterparty: "PRIYA SHARMA",
			date:         "01May23",
		},
	}

	matcher := NewMatcher(DefaultRegistry(), logging.NewMockLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := matcher.Match(tt.direction, tt.text)
			require.True(t, ok, "expected %s to match", tt.source)

			assert.Equal(t, tt.direction, record.Direction)
			assert.Equal(t, tt.source, record.Source)
			assert.True(t, decimal.RequireFromString(tt.amount).Equal(record.Amount), "amount %s", record.Amount)
			assert.Equal(t, tt.counterparty, record.Counterparty)
			assert.Equal(t, tt.date, record.Date)
		})
	}
}

func TestMatcher_UnknownDirection(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())

	_, ok := matcher.Match(models.DirectionUnknown, "Spent Rs.500 On HDFC Bank Card 1234 At AMAZON On 12-01-23.")
	assert.False(t, ok, "unknown direction never searches both directions")

	_, ok = matcher.Match("", "anything")
	assert.False(t, ok)
}

func TestMatcher_WrongDirection(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())

	_, ok := matcher.Match(models.DirectionCredit, "Spent Rs.500 On HDFC Bank Card 1234 At AMAZON On 12-01-23.")
	assert.False(t, ok)
}

func TestMatcher_RegistrationOrderWins(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())

	// The ICICI message comes first in the text, but HDFC_DEBIT is registered first.
	text := "ICICI Bank Acct XX123 debited for Rs 250.00 on 05-Feb-23; SWIGGY credited. " +
		"Spent Rs.500 On HDFC Bank Card 1234 At AMAZON On 12-01-23."

	record, ok := matcher.Match(models.DirectionDebit, text)
	require.True(t, ok)
	assert.Equal(t, "HDFC_DEBIT", record.Source)
	assert.Equal(t, "AMAZON", record.Counterparty)
	assert.True(t, decimal.NewFromInt(500).Equal(record.Amount))
}

func TestMatcher_KeywordIsCaseSensitive(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())

	// The pattern is case-insensitive, but the cheap keyword filter is not.
	_, ok := matcher.Match(models.DirectionDebit, "spent rs.500 on hdfc bank card 1234 at amazon on 12-01-23.")
	assert.False(t, ok)
}

func TestMatcher_ThousandsSeparatorFallsThrough(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())

	record, ok := matcher.Match(models.DirectionDebit, "Spent Rs.1,500.00 On HDFC Bank Card 1234 At AMAZON On 12-01-23.")
	assert.False(t, ok, "amounts with separators must not be silently truncated")
	assert.True(t, record.IsZero())
}

func TestMatcher_MalformedAmountRejectsTemplate(t *testing.T) {
	logger := logging.NewMockLogger()
	matcher := NewMatcher(nil, logger)

	record, ok := matcher.Match(models.DirectionDebit, "Spent Rs.1.2.3 On HDFC Bank Card 1234 At AMAZON On 12-01-23.")
	assert.False(t, ok)
	assert.True(t, record.IsZero(), "no partially filled record")

	entries := logger.GetEntriesByLevel("DEBUG")
	require.NotEmpty(t, entries)
	var extractionErr *parsererror.ExtractionError
	assert.True(t, errors.As(entries[0].Error, &extractionErr))
	assert.Equal(t, "HDFC_DEBIT", extractionErr.Template)
	assert.Equal(t, "amount", extractionErr.Field)
}

func TestMatcher_MalformedExtractionContinuesToNextTemplate(t *testing.T) {
	first := Template{
		Name:      "ACME_STRICT",
		Direction: models.DirectionDebit,
		Keyword:   "ACME",
		Pattern:   regexp.MustCompile(`ACME paid ([\d.]+) to (\w+)`),
		Extract:   Fields{Amount: 1, Counterparty: 2}.Extractor("ACME_STRICT"),
	}
	second := Template{
		Name:      "ACME_LOOSE",
		Direction: models.DirectionDebit,
		Keyword:   "ACME",
		Pattern:   regexp.MustCompile(`to (\w+)`),
		Extract: func(groups []string) (models.TransactionRecord, error) {
			return models.TransactionRecord{Counterparty: groups[1]}, nil
		},
	}
	registry, err := NewRegistry(first, second)
	require.NoError(t, err)

	record, ok := NewMatcher(registry, logging.NewMockLogger()).Match(models.DirectionDebit, "ACME paid 1..2 to BOB")
	require.True(t, ok)
	assert.Equal(t, "ACME_LOOSE", record.Source)
	assert.Equal(t, "BOB", record.Counterparty)
	assert.Equal(t, models.DirectionDebit, record.Direction)
}

func TestMatcher_MatchErr(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())

	_, err := matcher.MatchErr(models.DirectionUnknown, "Hello, how are you?")
	assert.ErrorIs(t, err, parsererror.ErrNoTemplateMatch)

	record, err := matcher.MatchErr(models.DirectionDebit, "Spent Rs.500 On HDFC Bank Card 1234 At AMAZON On 12-01-23.")
	require.NoError(t, err)
	assert.Equal(t, "AMAZON", record.Counterparty)
}

func TestMatcher_Idempotent(t *testing.T) {
	matcher := NewMatcher(nil, logging.NewMockLogger())
	text := "Dear UPI user A/C X1234 debited by 120.0 on date 10Mar23 trf to RAPIDO Refno 307012345678 -SBI"

	first, ok1 := matcher.Match(models.DirectionDebit, text)
	second, ok2 := matcher.Match(models.DirectionDebit, text)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first.Counterparty, second.Counterparty)
	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Date, second.Date)
}

func TestRegistry_Order(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, 6, r.Len())
	assert.Equal(t, []string{"HDFC_DEBIT", "ICICI_DEBIT", "SBI_DEBIT", "ICICI_CREDIT", "HDFC_CREDIT", "SBI_CREDIT"}, r.Names())

	var debitNames, creditNames []string
	for _, tpl := range r.Templates(models.DirectionDebit) {
		debitNames = append(debitNames, tpl.Name)
	}
	for _, tpl := range r.Templates(models.DirectionCredit) {
		creditNames = append(creditNames, tpl.Name)
	}
	assert.Equal(t, []string{"HDFC_DEBIT", "ICICI_DEBIT", "SBI_DEBIT"}, debitNames)
	assert.Equal(t, []string{"ICICI_CREDIT", "HDFC_CREDIT", "SBI_CREDIT"}, creditNames)
	assert.Empty(t, r.Templates(models.DirectionUnknown))
}

func TestRegistry_RegisterValidation(t *testing.T) {
	valid := Template{
		Name:      "X",
		Direction: models.DirectionCredit,
		Pattern:   regexp.MustCompile(`x`),
		Extract:   func([]string) (models.TransactionRecord, error) { return models.TransactionRecord{}, nil },
	}

	tests := []struct {
		name   string
		mutate func(*Template)
		errMsg string
	}{
		{name: "missing name", mutate: func(tpl *Template) { tpl.Name = "" }, errMsg: "template name is required"},
		{name: "unknown direction", mutate: func(tpl *Template) { tpl.Direction = models.DirectionUnknown }, errMsg: "direction must be debit or credit"},
		{name: "missing pattern", mutate: func(tpl *Template) { tpl.Pattern = nil }, errMsg: "pattern is required"},
		{name: "missing extractor", mutate: func(tpl *Template) { tpl.Extract = nil }, errMsg: "extract function is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := valid
			tt.mutate(&tpl)
			_, err := NewRegistry(tpl)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	_, err := NewRegistry(valid, valid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestExtractDetails(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		amount    string
		direction models.TransactionDirection
		date      string
		recipient string
	}{
		{
			name:      "debit with separators",
			text:      "Rs.1,500.00 debited from A/c XX12 on 12-Jan-23 to AMAZON PAY",
			amount:    "1500",
			direction: models.DirectionDebit,
			date:      "12-Jan-23",
			recipient: "AMAZON PAY",
		},
		{
			name:      "credit with numeric date",
			text:      "Received INR 250.00 by JOHN DOE on 01/02/2023",
			amount:    "250",
			direction: models.DirectionCredit,
			date:      "01/02/2023",
			recipient: "JOHN DOE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ExtractDetails(tt.text)
			require.True(t, d.HasAmount)
			assert.True(t, decimal.RequireFromString(tt.amount).Equal(d.Amount), "amount %s", d.Amount)
			assert.Equal(t, tt.direction, d.Direction)
			assert.Equal(t, tt.date, d.Date)
			assert.Equal(t, tt.recipient, d.Recipient)
			assert.False(t, d.IsEmpty())
		})
	}

	empty := ExtractDetails("Hello, how are you?")
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, models.DirectionUnknown, empty.Direction)
}
