// Package direction detects whether a notification message describes money
// leaving (debit) or arriving on (credit) an account.
package direction

import (
	"strings"

	"fjacquet/sms-categorizer/internal/models"
)

// Detector scans text against a debit and a credit lexicon. It is immutable
// after construction and safe for concurrent use.
type Detector struct {
	debit  []string
	credit []string
}

// Match describes the keyword that decided the direction.
type Match struct {
	Direction models.TransactionDirection
	Keyword   string
	Index     int
}

var defaultDetector = NewDetector(defaultDebitKeywords, defaultCreditKeywords)

// NewDetector builds a detector over the given lexicons. Keywords are
// lowercased; empty keywords are dropped.
func NewDetector(debit, credit []string) *Detector {
	return &Detector{
		debit:  normalize(debit),
		credit: normalize(credit),
	}
}

// Default returns the detector over the built-in lexicons.
func Default() *Detector {
	return defaultDetector
}

// Detect returns the direction of text using the built-in lexicons.
func Detect(text string) models.TransactionDirection {
	return defaultDetector.Detect(text)
}

// Detect returns the direction associated with the earliest keyword in text,
// or DirectionUnknown when no keyword occurs.
func (d *Detector) Detect(text string) models.TransactionDirection {
	return d.DetectWithKeyword(text).Direction
}

// DetectWithKeyword is Detect that also reports the deciding keyword and its
// byte index in the lowercased text. Index is -1 when nothing matched.
//
// The debit lexicon is scanned first and a later candidate only wins with a
// strictly smaller index, so debit wins a tie at the same position.
func (d *Detector) DetectWithKeyword(text string) Match {
	lower := strings.ToLower(text)
	best := Match{Direction: models.DirectionUnknown, Index: -1}

	scan := func(keywords []string, dir models.TransactionDirection) {
		for _, keyword := range keywords {
			idx := strings.Index(lower, keyword)
			if idx == -1 {
				continue
			}
			if best.Index == -1 || idx < best.Index {
				best = Match{Direction: dir, Keyword: keyword, Index: idx}
			}
		}
	}

	scan(d.debit, models.DirectionDebit)
	scan(d.credit, models.DirectionCredit)

	return best
}

func normalize(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
