// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Classifier backends
const (
	BackendNone    = "none"
	BackendServing = "serving"
	BackendGemini  = "gemini"
)

// LogConfig configures the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig configures batch CSV input and output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// CategoriesConfig locates the optional rule override file.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ClassifierConfig selects and configures the fallback classifier.
type ClassifierConfig struct {
	Backend        string `mapstructure:"backend" yaml:"backend"`
	VocabularyFile string `mapstructure:"vocabulary_file" yaml:"vocabulary_file"`
	LabelsFile     string `mapstructure:"labels_file" yaml:"labels_file"`
	ServingURL     string `mapstructure:"serving_url" yaml:"serving_url"`
	ModelName      string `mapstructure:"model_name" yaml:"model_name"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// AIConfig configures the Gemini backend.
type AIConfig struct {
	Model             string `mapstructure:"model" yaml:"model"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// BatchConfig configures the batch worker pool. Zero workers means one per CPU.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	Categories CategoriesConfig `mapstructure:"categories" yaml:"categories"`
	Classifier ClassifierConfig `mapstructure:"classifier" yaml:"classifier"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Batch      BatchConfig      `mapstructure:"batch" yaml:"batch"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then config.yaml, then SMSCAT_* environment variables. The result
// is not validated; callers apply their overrides and then call Validate.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sms-categorizer")
	v.AddConfigPath(".sms-categorizer")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SMSCAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// The API key keeps its conventional unprefixed name.
	if err := v.BindEnv("ai.api_key", "SMSCAT_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("classifier.backend", BackendNone)
	v.SetDefault("classifier.vocabulary_file", "tokenizer.json")
	v.SetDefault("classifier.labels_file", "label_map.json")
	v.SetDefault("classifier.serving_url", "http://localhost:8501")
	v.SetDefault("classifier.model_name", "sms_categorizer")
	v.SetDefault("classifier.timeout_seconds", 10)

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("batch.workers", 0)
}

// Validate checks c after command-line overrides have been applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must not be negative, got: %d", config.Batch.Workers)
	}

	switch config.Classifier.Backend {
	case BackendNone:
	case BackendServing:
		if config.Classifier.ServingURL == "" {
			return fmt.Errorf("classifier.serving_url required for the serving backend")
		}
		if config.Classifier.ModelName == "" {
			return fmt.Errorf("classifier.model_name required for the serving backend")
		}
		if config.Classifier.TimeoutSeconds < 1 || config.Classifier.TimeoutSeconds > 300 {
			return fmt.Errorf("classifier.timeout_seconds must be between 1 and 300, got: %d", config.Classifier.TimeoutSeconds)
		}
	case BackendGemini:
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required for the gemini backend")
		}
		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}
	default:
		return fmt.Errorf("invalid classifier backend: %s (must be 'none', 'serving' or 'gemini')", config.Classifier.Backend)
	}

	return nil
}
