// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionRecord is the structured result of parsing a notification message.
type TransactionRecord struct {
	Direction    TransactionDirection `json:"direction" yaml:"direction"`
	Amount       decimal.Decimal      `json:"amount" yaml:"amount"`
	Counterparty string               `json:"counterparty" yaml:"counterparty"` // Raw payee or payer text
	Date         string               `json:"date" yaml:"date"`                 // Raw matched date, never normalized
	Source       string               `json:"source" yaml:"source"`             // Template that produced the record
}

// ParseAmount parses an amount captured from a message into a decimal.
// Thousands separators are stripped; anything else that is not a number is an error.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	amount = strings.ReplaceAll(amount, ",", "")
	if amount == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	return dec, nil
}

// IsZero returns true if the record carries no data
func (r TransactionRecord) IsZero() bool {
	return r.Direction == "" && r.Amount.IsZero() && r.Counterparty == "" && r.Date == ""
}

// String returns a compact human-readable form of the record
func (r TransactionRecord) String() string {
	return fmt.Sprintf("%s %s %s (%s)", r.Direction, r.Amount.StringFixed(2), r.Counterparty, r.Date)
}
