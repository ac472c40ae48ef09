package models

// Category represents a transaction category
type Category struct {
	Name        string
	Description string
}

// CategoryConfig represents one ordered rule: a category and the lowercase
// keyword substrings that select it.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}

// IsCatchAll returns true for a rule without keywords
func (c CategoryConfig) IsCatchAll() bool {
	return len(c.Keywords) == 0
}
