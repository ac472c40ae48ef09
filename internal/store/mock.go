package store

import (
	"fjacquet/sms-categorizer/internal/classifier"
	"fjacquet/sms-categorizer/internal/models"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	Categories []models.CategoryConfig
	Vocabulary classifier.Vocabulary
	Labels     classifier.LabelMap

	LoadCategoriesError error
	LoadVocabularyError error
	LoadLabelsError     error
}

// LoadCategories returns the mock categories.
func (m *MockStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// LoadVocabulary returns the mock vocabulary.
func (m *MockStore) LoadVocabulary() (classifier.Vocabulary, error) {
	if m.LoadVocabularyError != nil {
		return nil, m.LoadVocabularyError
	}
	return m.Vocabulary, nil
}

// LoadLabels returns the mock label map.
func (m *MockStore) LoadLabels() (classifier.LabelMap, error) {
	if m.LoadLabelsError != nil {
		return nil, m.LoadLabelsError
	}
	return m.Labels, nil
}
