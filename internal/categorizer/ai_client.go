package categorizer

import (
	"context"
)

// AIClient abstracts a text-generation backend so the classifier can be
// tested without network calls.
type AIClient interface {
	// Generate sends prompt to the model and returns its text answer.
	Generate(ctx context.Context, prompt string) (string, error)
}
