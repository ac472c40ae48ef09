// Package store loads the rule and classifier artifacts the application reads
// from disk: the category rules YAML, the tokenizer vocabulary and the label map.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fjacquet/sms-categorizer/internal/classifier"
	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// Default file names searched for when none is configured.
const (
	DefaultCategoriesFile = "categories.yaml"
	DefaultVocabularyFile = "tokenizer.json"
	DefaultLabelsFile     = "label_map.json"
)

// Store is the read side used by the container.
type Store interface {
	LoadCategories() ([]models.CategoryConfig, error)
	LoadVocabulary() (classifier.Vocabulary, error)
	LoadLabels() (classifier.LabelMap, error)
}

// FileStore reads artifacts from YAML or JSON files. JSON files are parsed
// with the YAML decoder.
type FileStore struct {
	CategoriesFile string
	VocabularyFile string
	LabelsFile     string
	logger         logging.Logger
}

// NewFileStore creates a store. Empty file names fall back to the defaults.
func NewFileStore(categoriesFile, vocabularyFile, labelsFile string, logger logging.Logger) *FileStore {
	return &FileStore{
		CategoriesFile: categoriesFile,
		VocabularyFile: vocabularyFile,
		LabelsFile:     labelsFile,
		logger:         logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a file in the standard locations: as given, then
// ./config, ./models and ~/.config/sms-categorizer.
func (s *FileStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("models", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "sms-categorizer", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories reads the ordered category rules. A missing file yields an
// empty slice so the caller can use the built-in rules.
func (s *FileStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := orDefault(s.CategoriesFile, DefaultCategoriesFile)

	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Categories file not found, using built-in rules",
			logging.Field{Key: logging.FieldInputFile, Value: filename})
		return []models.CategoryConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	// The categories key decides the layout, even when its list is empty.
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err == nil {
		if _, present := keys["categories"]; present {
			var cfg models.CategoriesConfig
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
			}
			s.logger.Debug("Loaded categories",
				logging.Field{Key: logging.FieldCount, Value: len(cfg.Categories)},
				logging.Field{Key: logging.FieldInputFile, Value: path})
			return cfg.Categories, nil
		}
	}

	// Also accept a bare list without the top-level key.
	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	s.logger.Debug("Loaded categories from bare list",
		logging.Field{Key: logging.FieldCount, Value: len(categories)},
		logging.Field{Key: logging.FieldInputFile, Value: path})
	return categories, nil
}

// LoadVocabulary reads a flat {"word": id} map.
func (s *FileStore) LoadVocabulary() (classifier.Vocabulary, error) {
	data, path, err := s.readArtifact("vocabulary", orDefault(s.VocabularyFile, DefaultVocabularyFile))
	if err != nil {
		return nil, err
	}

	var vocab classifier.Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, &parsererror.ClassifierLoadError{Artifact: "vocabulary", Err: fmt.Errorf("parsing %s: %w", path, err)}
	}
	if len(vocab) == 0 {
		return nil, &parsererror.ClassifierLoadError{Artifact: "vocabulary", Err: fmt.Errorf("%s is empty", path)}
	}

	s.logger.Debug("Loaded vocabulary",
		logging.Field{Key: logging.FieldCount, Value: len(vocab)},
		logging.Field{Key: logging.FieldArtifact, Value: path})
	return vocab, nil
}

// LoadLabels reads a {"0": "Food & Dining", ...} map.
func (s *FileStore) LoadLabels() (classifier.LabelMap, error) {
	data, path, err := s.readArtifact("labels", orDefault(s.LabelsFile, DefaultLabelsFile))
	if err != nil {
		return nil, err
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &parsererror.ClassifierLoadError{Artifact: "labels", Err: fmt.Errorf("parsing %s: %w", path, err)}
	}

	labels := make(classifier.LabelMap, len(raw))
	for key, name := range raw {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return nil, &parsererror.ClassifierLoadError{Artifact: "labels", Err: fmt.Errorf("invalid label index %q in %s", key, path)}
		}
		labels[idx] = name
	}
	if len(labels) == 0 {
		return nil, &parsererror.ClassifierLoadError{Artifact: "labels", Err: fmt.Errorf("%s is empty", path)}
	}

	s.logger.Debug("Loaded label map",
		logging.Field{Key: logging.FieldCount, Value: len(labels)},
		logging.Field{Key: logging.FieldArtifact, Value: path})
	return labels, nil
}

func (s *FileStore) readArtifact(artifact, filename string) ([]byte, string, error) {
	path, err := s.FindConfigFile(filename)
	if err != nil {
		return nil, "", &parsererror.ClassifierLoadError{Artifact: artifact, Err: fmt.Errorf("%s: %w", filename, err)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &parsererror.ClassifierLoadError{Artifact: artifact, Err: err}
	}
	return data, path, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
