package classifier

import (
	"math"
	"sort"

	"fjacquet/sms-categorizer/internal/models"
)

// LabelMap maps model output indices to category names.
type LabelMap map[int]string

// Decode returns the label of the highest score. The first maximal index wins
// ties and NaN scores are ignored; an index without a label, or a vector of
// only NaN scores, decodes to models.CategoryOther with index -1 in the
// latter case. ok is false for an empty score vector.
func (l LabelMap) Decode(scores []float32) (label string, index int, ok bool) {
	if len(scores) == 0 {
		return "", -1, false
	}

	best := -1
	for i, score := range scores {
		if math.IsNaN(float64(score)) {
			continue
		}
		if best < 0 || score > scores[best] {
			best = i
		}
	}
	if best < 0 {
		return models.CategoryOther, -1, true
	}

	if name, found := l[best]; found && name != "" {
		return name, best, true
	}
	return models.CategoryOther, best, true
}

// Labels returns the distinct label names ordered by index.
func (l LabelMap) Labels() []string {
	indices := make([]int, 0, len(l))
	for i := range l {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	seen := make(map[string]struct{}, len(l))
	out := make([]string, 0, len(l))
	for _, i := range indices {
		if _, dup := seen[l[i]]; dup {
			continue
		}
		seen[l[i]] = struct{}{}
		out = append(out, l[i])
	}
	return out
}
