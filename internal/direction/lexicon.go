package direction

// Default keyword lexicons. Order matters only for reporting which keyword won;
// the detected direction depends on positions in the text.
var (
	defaultDebitKeywords = []string{
		"debited",
		"spent",
		"paid",
		"withdrawn",
		"purchase",
		"debit",
	}

	defaultCreditKeywords = []string{
		"credited",
		"credit",
		"received",
		"added",
		"deposited",
		"refunded",
	}
)

// DebitKeywords returns a copy of the default debit-signaling lexicon.
func DebitKeywords() []string {
	return append([]string(nil), defaultDebitKeywords...)
}

// CreditKeywords returns a copy of the default credit-signaling lexicon.
func CreditKeywords() []string {
	return append([]string(nil), defaultCreditKeywords...)
}
