// Package container provides dependency injection for the sms-categorizer
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/sms-categorizer/internal/categorizer"
	"fjacquet/sms-categorizer/internal/classifier"
	"fjacquet/sms-categorizer/internal/common"
	"fjacquet/sms-categorizer/internal/config"
	"fjacquet/sms-categorizer/internal/direction"
	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"
	"fjacquet/sms-categorizer/internal/pipeline"
	"fjacquet/sms-categorizer/internal/store"
	"fjacquet/sms-categorizer/internal/templates"
)

// Container holds all application dependencies. It is immutable after
// creation; dependencies are only reachable through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      store.Store
	detector   *direction.Detector
	matcher    *templates.Matcher
	resolver   *categorizer.Resolver
	classifier pipeline.Classifier
	pipeline   *pipeline.Pipeline
	batch      *common.BatchProcessor
	closers    []io.Closer
}

// NewContainer creates and wires all application dependencies from cfg,
// reading rule and artifact files from disk.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := config.NewLogger(cfg)
	fileStore := store.NewFileStore(cfg.Categories.File, cfg.Classifier.VocabularyFile, cfg.Classifier.LabelsFile, logger)
	return NewContainerWithStore(cfg, fileStore, logger)
}

// NewContainerWithStore wires the application around an explicit store and
// logger.
func NewContainerWithStore(cfg *config.Config, st store.Store, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	logger = logging.OrDefault(logger)

	rules, err := loadRuleSet(st, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{
		logger:   logger,
		config:   cfg,
		store:    st,
		detector: direction.Default(),
		matcher:  templates.NewMatcher(templates.DefaultRegistry(), logger),
		resolver: categorizer.NewResolver(rules, logger),
		batch:    common.NewBatchProcessor(cfg.Batch.Workers, logger),
	}

	if err := c.buildClassifier(rules); err != nil {
		return nil, err
	}

	c.pipeline = pipeline.New(c.detector, c.matcher, c.resolver, c.classifier, logger)

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "templates", Value: c.matcher.Registry().Len()},
		logging.Field{Key: "categories", Value: len(rules.Names())},
		logging.Field{Key: "classifier_backend", Value: cfg.Classifier.Backend})

	return c, nil
}

func loadRuleSet(st store.Store, logger logging.Logger) (*categorizer.RuleSet, error) {
	categories, err := st.LoadCategories()
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return categorizer.DefaultRuleSet(), nil
	}

	rules, err := categorizer.NewRuleSet(categories)
	if err != nil {
		return nil, err
	}
	logger.Info("Using custom category rules", logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return rules, nil
}

func (c *Container) buildClassifier(rules *categorizer.RuleSet) error {
	cfg := c.config

	switch cfg.Classifier.Backend {
	case config.BackendNone, "":
		c.logger.Debug("No fallback classifier configured")
		return nil

	case config.BackendServing:
		model := classifier.NewServingModel(cfg.Classifier.ServingURL, cfg.Classifier.ModelName,
			time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second)
		c.classifier = classifier.New(ServingLoader(c.store, model), c.logger)
		return nil

	case config.BackendGemini:
		client, err := categorizer.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model, c.logger)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client)
		labels := append(rules.Names(), models.CategoryOther)
		c.classifier = categorizer.NewGeminiClassifier(client, labels, cfg.AI.RequestsPerMinute, c.logger)
		return nil

	default:
		return fmt.Errorf("unknown classifier backend: %s", cfg.Classifier.Backend)
	}
}

// availabilityChecker is implemented by models that can report readiness.
type availabilityChecker interface {
	CheckAvailable(ctx context.Context) error
}

// ServingLoader loads the vocabulary and label map from st and checks that
// model is ready to serve.
func ServingLoader(st store.Store, model classifier.Model) classifier.Loader {
	return func(ctx context.Context) (*classifier.Artifacts, error) {
		vocab, err := st.LoadVocabulary()
		if err != nil {
			return nil, err
		}
		labels, err := st.LoadLabels()
		if err != nil {
			return nil, err
		}
		if checker, ok := model.(availabilityChecker); ok {
			if err := checker.CheckAvailable(ctx); err != nil {
				return nil, &parsererror.ClassifierLoadError{Artifact: "model", Err: err}
			}
		}
		return &classifier.Artifacts{Vocabulary: vocab, Labels: labels, Model: model}, nil
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the artifact store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetDetector returns the direction detector.
func (c *Container) GetDetector() *direction.Detector {
	return c.detector
}

// GetMatcher returns the template matcher.
func (c *Container) GetMatcher() *templates.Matcher {
	return c.matcher
}

// GetResolver returns the category resolver.
func (c *Container) GetResolver() *categorizer.Resolver {
	return c.resolver
}

// GetClassifier returns the fallback classifier, or nil when none is configured.
func (c *Container) GetClassifier() pipeline.Classifier {
	return c.classifier
}

// GetPipeline returns the message pipeline.
func (c *Container) GetPipeline() *pipeline.Pipeline {
	return c.pipeline
}

// GetBatchProcessor returns the batch worker pool.
func (c *Container) GetBatchProcessor() *common.BatchProcessor {
	return c.batch
}

// Close releases backend connections.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
