package templates

import (
	"errors"

	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"
)

// Matcher walks a Registry for a given direction. It holds no mutable state
// and is safe for concurrent use.
type Matcher struct {
	registry *Registry
	logger   logging.Logger
}

// NewMatcher creates a matcher over registry. A nil registry means the default one.
func NewMatcher(registry *Registry, logger logging.Logger) *Matcher {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Matcher{
		registry: registry,
		logger:   logging.OrDefault(logger),
	}
}

// Match returns the record produced by the first template for direction whose
// keyword is present and whose pattern matches and extracts cleanly.
// ok is false for an unknown direction or when no template succeeds.
func (m *Matcher) Match(direction models.TransactionDirection, text string) (models.TransactionRecord, bool) {
	if !direction.IsKnown() {
		return models.TransactionRecord{}, false
	}

	for _, t := range m.registry.Templates(direction) {
		record, ok, err := t.Apply(text)
		if err != nil {
			var extractionErr *parsererror.ExtractionError
			if errors.As(err, &extractionErr) {
				m.logger.WithError(err).Debug("Template matched but extraction failed, trying next",
					logging.Field{Key: logging.FieldTemplate, Value: t.Name})
				continue
			}
			m.logger.WithError(err).Warn("Template extraction returned an unexpected error",
				logging.Field{Key: logging.FieldTemplate, Value: t.Name})
			continue
		}
		if !ok {
			continue
		}

		m.logger.Debug("Template matched",
			logging.Field{Key: logging.FieldTemplate, Value: t.Name},
			logging.Field{Key: logging.FieldDirection, Value: direction})
		return record, true
	}

	return models.TransactionRecord{}, false
}

// MatchErr is Match returning parsererror.ErrNoTemplateMatch instead of a bool.
func (m *Matcher) MatchErr(direction models.TransactionDirection, text string) (models.TransactionRecord, error) {
	record, ok := m.Match(direction, text)
	if !ok {
		return models.TransactionRecord{}, parsererror.ErrNoTemplateMatch
	}
	return record, nil
}

// Registry returns the registry the matcher walks.
func (m *Matcher) Registry() *Registry {
	return m.registry
}
