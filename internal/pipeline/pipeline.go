// Package pipeline runs a notification through direction detection, template
// matching and category resolution, falling back to a learned classifier when
// no template applies.
package pipeline

import (
	"context"
	"time"

	"fjacquet/sms-categorizer/internal/categorizer"
	"fjacquet/sms-categorizer/internal/direction"
	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"
	"fjacquet/sms-categorizer/internal/templates"
)

// Classifier is the fallback contract: whole message in, category out.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Result is the outcome of processing one message.
type Result struct {
	Text      string
	Direction models.TransactionDirection

	// Record is set when a template matched.
	Record *models.TransactionRecord

	Category       string
	CategorySource string // models.SourceKeyword, SourceClassifier or SourceManual
	Keyword        string // matched rule keyword, keyword source only

	// NeedsManualTagging is set when neither rules nor classifier produced a category.
	NeedsManualTagging bool

	// Hints holds best-effort fields for messages no template matched.
	Hints templates.Details
}

// Matched reports whether a template produced the record.
func (r Result) Matched() bool {
	return r.Record != nil
}

// Pipeline is safe for concurrent use when its classifier is.
type Pipeline struct {
	detector   *direction.Detector
	matcher    *templates.Matcher
	resolver   *categorizer.Resolver
	classifier Classifier
	logger     logging.Logger
}

// New creates a pipeline. A nil classifier means messages that no template
// recognises are flagged for manual tagging.
func New(detector *direction.Detector, matcher *templates.Matcher, resolver *categorizer.Resolver, classifier Classifier, logger logging.Logger) *Pipeline {
	logger = logging.OrDefault(logger)
	if detector == nil {
		detector = direction.Default()
	}
	if matcher == nil {
		matcher = templates.NewMatcher(nil, logger)
	}
	if resolver == nil {
		resolver = categorizer.NewResolver(nil, logger)
	}
	return &Pipeline{
		detector:   detector,
		matcher:    matcher,
		resolver:   resolver,
		classifier: classifier,
		logger:     logger,
	}
}

// Process parses text and assigns a category. Rules run first; the classifier
// is only consulted when no template matched. The returned error is always a
// hard failure of the classifier; the Result is still usable and flagged for
// manual tagging in that case.
func (p *Pipeline) Process(ctx context.Context, text string) (Result, error) {
	start := time.Now()
	result := Result{Text: text}

	match := p.detector.DetectWithKeyword(text)
	result.Direction = match.Direction

	if record, ok := p.matcher.Match(match.Direction, text); ok {
		result.Record = &record
		result.Category, result.Keyword = p.resolver.ResolveWithKeyword(record.Counterparty)
		result.CategorySource = models.SourceKeyword

		p.logger.Debug("Message parsed by template",
			logging.Field{Key: logging.FieldTemplate, Value: record.Source},
			logging.Field{Key: logging.FieldDirection, Value: match.Direction},
			logging.Field{Key: logging.FieldCategory, Value: result.Category},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
		return result, nil
	}

	result.Hints = templates.ExtractDetails(text)

	if p.classifier == nil {
		result.NeedsManualTagging = true
		result.CategorySource = models.SourceManual
		p.logger.Debug("No template matched and no classifier configured",
			logging.Field{Key: logging.FieldReason, Value: parsererror.ErrNoTemplateMatch.Error()})
		return result, nil
	}

	category, err := p.classifier.Classify(ctx, text)
	if err != nil {
		result.NeedsManualTagging = true
		result.CategorySource = models.SourceManual
		return result, &parsererror.CategorizationError{Text: text, Strategy: StrategyName(p.classifier), Err: err}
	}

	result.Category = category
	result.CategorySource = models.SourceClassifier
	p.logger.Debug("Message categorized by classifier",
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return result, nil
}

// Categorize resolves the category of a whole message with the keyword rules
// only, without parsing it.
func (p *Pipeline) Categorize(text string) string {
	return p.resolver.Resolve(text)
}

// HasClassifier reports whether a fallback classifier is configured.
func (p *Pipeline) HasClassifier() bool {
	return p.classifier != nil
}

// StrategyName returns the name a classifier reports, or "Classifier".
func StrategyName(c Classifier) string {
	if named, ok := c.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "Classifier"
}

// Row flattens the result into a batch output row. err is the error Process
// returned, if any.
func (r Result) Row(id string, err error) models.ResultRow {
	row := models.ResultRow{
		ID:             id,
		Text:           r.Text,
		Direction:      r.Direction.String(),
		Category:       r.Category,
		CategorySource: r.CategorySource,
		ManualTagging:  r.NeedsManualTagging,
	}

	switch {
	case r.Record != nil:
		row.Amount = r.Record.Amount.StringFixed(2)
		row.Counterparty = r.Record.Counterparty
		row.Date = r.Record.Date
		row.Template = r.Record.Source
	default:
		if r.Hints.HasAmount {
			row.Amount = r.Hints.Amount.StringFixed(2)
		}
		row.Counterparty = r.Hints.Recipient
		row.Date = r.Hints.Date
	}

	if err != nil {
		row.Error = err.Error()
	}
	return row
}
