// Package classifier implements the fallback learned classifier used for
// messages no template recognises: tokenization into a fixed-length integer
// sequence, a pluggable Model, label decoding and lazily loaded artifacts.
package classifier

import "strings"

const (
	// SequenceLength is the fixed input length the model expects.
	SequenceLength = 40
	// PadValue fills positions past the end of the text.
	PadValue int32 = 0
	// OOVToken is the vocabulary entry used for unknown words.
	OOVToken = "<OOV>"
)

// Vocabulary maps lowercase words to integer ids.
type Vocabulary map[string]int32

// OOVID returns the id of OOVToken, or 0 when the vocabulary has none.
func (v Vocabulary) OOVID() int32 {
	if id, ok := v[OOVToken]; ok {
		return id
	}
	return 0
}

// Tokenize lowercases text, splits it on whitespace and maps every word
// through the vocabulary. The result always has SequenceLength entries:
// longer texts keep their first tokens, shorter ones are right-padded.
func (v Vocabulary) Tokenize(text string) []int32 {
	seq := make([]int32, SequenceLength)
	for i := range seq {
		seq[i] = PadValue
	}

	oov := v.OOVID()
	words := strings.Fields(strings.ToLower(text))
	for i, word := range words {
		if i >= SequenceLength {
			break
		}
		id, ok := v[word]
		if !ok {
			id = oov
		}
		seq[i] = id
	}
	return seq
}
