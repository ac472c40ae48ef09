package models

import (
	"fjacquet/sms-categorizer/internal/logging"
)

// CategorizationStats tracks how a batch of messages was categorized.
type CategorizationStats struct {
	Total        int // Messages processed
	Matched      int // Parsed by a template
	ByKeyword    int // Categorized by the keyword rules
	ByClassifier int // Categorized by the fallback classifier
	Manual       int // Left for manual tagging
	Failed       int // Classifier errors
}

// NewCategorizationStats creates an empty CategorizationStats.
func NewCategorizationStats() *CategorizationStats {
	return &CategorizationStats{}
}

// Add accounts for one result row.
func (cs *CategorizationStats) Add(row ResultRow) {
	cs.Total++
	if row.Template != "" {
		cs.Matched++
	}
	switch row.CategorySource {
	case SourceKeyword:
		cs.ByKeyword++
	case SourceClassifier:
		cs.ByClassifier++
	case SourceManual:
		cs.Manual++
	}
	if row.Error != "" {
		cs.Failed++
	}
}

// GetMatchRate returns the share of messages parsed by a template, as a percentage.
func (cs CategorizationStats) GetMatchRate() float64 {
	if cs.Total == 0 {
		return 0.0
	}
	return float64(cs.Matched) / float64(cs.Total) * 100.0
}

// LogSummary logs a summary of the statistics.
func (cs CategorizationStats) LogSummary(logger logging.Logger, input string) {
	if logger == nil {
		return
	}

	logger.Info("Categorization summary",
		logging.Field{Key: logging.FieldInputFile, Value: input},
		logging.Field{Key: "total_messages", Value: cs.Total},
		logging.Field{Key: "template_matched", Value: cs.Matched},
		logging.Field{Key: "by_keyword", Value: cs.ByKeyword},
		logging.Field{Key: "by_classifier", Value: cs.ByClassifier},
		logging.Field{Key: "manual", Value: cs.Manual},
		logging.Field{Key: "failed", Value: cs.Failed},
		logging.Field{Key: "match_rate", Value: cs.GetMatchRate()},
	)
}
