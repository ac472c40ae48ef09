package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"

	"golang.org/x/time/rate"
)

// GeminiClassifier classifies whole messages with an LLM, constrained to a
// closed label set. Answers outside the set decode to models.CategoryOther.
type GeminiClassifier struct {
	client  AIClient
	labels  []string
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewGeminiClassifier creates a classifier over labels. requestsPerMinute <= 0
// disables rate limiting.
func NewGeminiClassifier(client AIClient, labels []string, requestsPerMinute int, logger logging.Logger) *GeminiClassifier {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}

	return &GeminiClassifier{
		client:  client,
		labels:  append([]string(nil), labels...),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logging.OrDefault(logger),
	}
}

// Classify implements the fallback classifier contract.
func (g *GeminiClassifier) Classify(ctx context.Context, text string) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", &parsererror.InferenceError{Stage: "rate limit", Err: err}
	}

	answer, err := g.client.Generate(ctx, g.prompt(text))
	if err != nil {
		return "", &parsererror.InferenceError{Stage: "generate", Err: err}
	}

	category := g.decode(answer)
	g.logger.Debug("Message classified by LLM",
		logging.Field{Key: logging.FieldStrategy, Value: g.Name()},
		logging.Field{Key: logging.FieldCategory, Value: category})

	return category, nil
}

// Name returns the name of this strategy for logging.
func (g *GeminiClassifier) Name() string {
	return "Gemini"
}

// Labels returns the closed label set.
func (g *GeminiClassifier) Labels() []string {
	return append([]string(nil), g.labels...)
}

func (g *GeminiClassifier) prompt(text string) string {
	return fmt.Sprintf(`Categorize the following bank transaction notification:
%s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`, text, strings.Join(g.labels, ", "))
}

// decode extracts the category from the model answer. A "Category:" line is
// preferred; otherwise the whole answer is compared to the labels.
func (g *GeminiClassifier) decode(answer string) string {
	candidate := strings.TrimSpace(answer)
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			candidate = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			break
		}
	}
	candidate = strings.Trim(candidate, "[]\"'. ")

	for _, label := range g.labels {
		if strings.EqualFold(label, candidate) {
			return label
		}
	}
	return models.CategoryOther
}
