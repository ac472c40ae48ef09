package categorizer

import (
	"context"

	"fjacquet/sms-categorizer/internal/models"
)

// CategorizationStrategy defines one way of assigning a category to text.
type CategorizationStrategy interface {
	// Categorize returns the category for text and whether the strategy
	// could decide. An error means the strategy failed, not that it had no
	// opinion.
	Categorize(ctx context.Context, text string) (models.Category, bool, error)

	// Name returns the name of this strategy for logging.
	Name() string
}
