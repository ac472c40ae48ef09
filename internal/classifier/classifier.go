package classifier

import (
	"context"
	"errors"
	"fmt"

	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/parsererror"
)

// Artifacts is everything a Classifier needs to run inference.
type Artifacts struct {
	Vocabulary Vocabulary
	Labels     LabelMap
	Model      Model
}

// Loader produces the artifacts. It is called lazily, at most once
// successfully, and retried after failures.
type Loader func(ctx context.Context) (*Artifacts, error)

// Classifier maps whole messages to a category with a learned model.
// It is safe for concurrent use.
type Classifier struct {
	artifacts *Lazy[*Artifacts]
	logger    logging.Logger
}

// New creates a classifier whose artifacts come from load on first use.
func New(load Loader, logger logging.Logger) *Classifier {
	logger = logging.OrDefault(logger)
	return &Classifier{
		artifacts: NewLazy(func(ctx context.Context) (*Artifacts, error) {
			a, err := load(ctx)
			if err != nil {
				logger.WithError(err).Warn("Failed to load classifier artifacts")
				return nil, asLoadError(err)
			}
			if a == nil || a.Model == nil {
				return nil, &parsererror.ClassifierLoadError{Artifact: "model", Err: errors.New("loader returned no model")}
			}
			logger.Info("Classifier artifacts loaded",
				logging.Field{Key: logging.FieldCount, Value: len(a.Vocabulary)})
			return a, nil
		}),
		logger: logger,
	}
}

// NewWithArtifacts creates a classifier around already loaded artifacts.
func NewWithArtifacts(a *Artifacts, logger logging.Logger) *Classifier {
	return New(func(context.Context) (*Artifacts, error) { return a, nil }, logger)
}

// Classify tokenizes text, runs the model and decodes the best label.
// Indices with no label yield models.CategoryOther.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	a, err := c.artifacts.Get(ctx)
	if err != nil {
		return "", err
	}

	input := a.Vocabulary.Tokenize(text)
	scores, err := a.Model.Predict(ctx, input)
	if err != nil {
		return "", &parsererror.InferenceError{Stage: "predict", Err: err}
	}

	label, index, ok := a.Labels.Decode(scores)
	if !ok {
		return "", &parsererror.InferenceError{Stage: "decode", Err: errors.New("empty score vector")}
	}

	c.logger.Debug("Message classified",
		logging.Field{Key: logging.FieldLabelIndex, Value: index},
		logging.Field{Key: logging.FieldCategory, Value: label})
	return label, nil
}

// Warm loads the artifacts without classifying anything.
func (c *Classifier) Warm(ctx context.Context) error {
	_, err := c.artifacts.Get(ctx)
	return err
}

// Loaded reports whether artifacts are cached.
func (c *Classifier) Loaded() bool {
	return c.artifacts.Loaded()
}

// Name returns the name of this strategy for logging.
func (c *Classifier) Name() string {
	return "Classifier"
}

func asLoadError(err error) error {
	var loadErr *parsererror.ClassifierLoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &parsererror.ClassifierLoadError{Artifact: "artifacts", Err: fmt.Errorf("loader: %w", err)}
}
