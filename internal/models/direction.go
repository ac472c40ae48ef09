package models

import "strings"

// TransactionDirection represents the direction of a transaction
type TransactionDirection string

const (
	DirectionDebit   TransactionDirection = "debit"
	DirectionCredit  TransactionDirection = "credit"
	DirectionUnknown TransactionDirection = "unknown"
)

// String returns the upper-case name of the direction
func (d TransactionDirection) String() string {
	switch d {
	case DirectionDebit:
		return "DEBIT"
	case DirectionCredit:
		return "CREDIT"
	default:
		return "UNKNOWN"
	}
}

// IsDebit returns true if money leaves the account
func (d TransactionDirection) IsDebit() bool {
	return d == DirectionDebit
}

// IsCredit returns true if money arrives on the account
func (d TransactionDirection) IsCredit() bool {
	return d == DirectionCredit
}

// IsKnown returns true for debit and credit
func (d TransactionDirection) IsKnown() bool {
	return d == DirectionDebit || d == DirectionCredit
}

// TransactionDirectionFromString parses a direction name. Both the long form
// (DEBIT/CREDIT) and the ISO 20022 codes (DBIT/CRDT) are accepted.
func TransactionDirectionFromString(s string) TransactionDirection {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBIT", "DBIT":
		return DirectionDebit
	case "CREDIT", "CRDT":
		return DirectionCredit
	default:
		return DirectionUnknown
	}
}
