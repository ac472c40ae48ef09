// Package parsererror defines the error taxonomy of the parsing and
// classification pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoTemplateMatch signals that no registered template produced a record.
// It is a normal outcome: the caller falls back to the classifier or to manual tagging.
var ErrNoTemplateMatch = errors.New("no template matched")

// ErrClassifierUnavailable is returned when a fallback is required but no
// classifier backend is configured.
var ErrClassifierUnavailable = errors.New("classifier not configured")

// ExtractionError represents a template whose keyword and pattern matched but
// whose captured field could not be converted.
type ExtractionError struct {
	Template string
	Field    string
	Value    string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s: failed to extract %s='%s': %v",
		e.Template, e.Field, e.Value, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ClassifierLoadError represents a failure to load a classifier artifact
// (vocabulary, label map or model).
type ClassifierLoadError struct {
	Artifact string
	Err      error
}

func (e *ClassifierLoadError) Error() string {
	return fmt.Sprintf("failed to load classifier %s: %v", e.Artifact, e.Err)
}

func (e *ClassifierLoadError) Unwrap() error {
	return e.Err
}

// InferenceError represents a failure of a single inference call.
type InferenceError struct {
	Stage string
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed during %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// CategorizationError represents a categorization failure
type CategorizationError struct {
	Text     string
	Strategy string
	Err      error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for '%s' using %s: %v",
		truncate(e.Text, 40), e.Strategy, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// InvalidRuleSetError is returned when an ordered category rule set violates
// its construction invariants.
type InvalidRuleSetError struct {
	Reason string
}

func (e *InvalidRuleSetError) Error() string {
	return fmt.Sprintf("invalid category rule set: %s", e.Reason)
}

// IsHard reports whether err must be surfaced to the caller, as opposed to the
// locally recovered outcomes (no match, malformed extraction).
func IsHard(err error) bool {
	if err == nil || errors.Is(err, ErrNoTemplateMatch) {
		return false
	}
	var extractionErr *ExtractionError
	return !errors.As(err, &extractionErr)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
