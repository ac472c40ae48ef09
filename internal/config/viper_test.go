package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/sms-categorizer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "categories.yaml", config.Categories.File)
	assert.Equal(t, BackendNone, config.Classifier.Backend)
	assert.Equal(t, "tokenizer.json", config.Classifier.VocabularyFile)
	assert.Equal(t, "label_map.json", config.Classifier.LabelsFile)
	assert.Equal(t, "http://localhost:8501", config.Classifier.ServingURL)
	assert.Equal(t, "sms_categorizer", config.Classifier.ModelName)
	assert.Equal(t, 10, config.Classifier.TimeoutSeconds)
	assert.Equal(t, "gemini-1.5-flash", config.AI.Model)
	assert.Equal(t, 10, config.AI.RequestsPerMinute)
	assert.Empty(t, config.AI.APIKey)
	assert.Equal(t, 0, config.Batch.Workers)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"SMSCAT_LOG_LEVEL":              "debug",
		"SMSCAT_LOG_FORMAT":             "json",
		"SMSCAT_CSV_DELIMITER":          ";",
		"SMSCAT_CLASSIFIER_BACKEND":     "gemini",
		"SMSCAT_AI_MODEL":               "gemini-1.5-pro",
		"SMSCAT_AI_REQUESTS_PER_MINUTE": "15",
		"SMSCAT_BATCH_WORKERS":          "4",
		"GEMINI_API_KEY":                "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, BackendGemini, config.Classifier.Backend)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, 15, config.AI.RequestsPerMinute)
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
categories:
  file: "rules/my-categories.yaml"
classifier:
  backend: "serving"
  serving_url: "http://tf:8501"
  model_name: "sms"
  timeout_seconds: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "rules/my-categories.yaml", config.Categories.File)
	assert.Equal(t, BackendServing, config.Classifier.Backend)
	assert.Equal(t, "http://tf:8501", config.Classifier.ServingURL)
	assert.Equal(t, "sms", config.Classifier.ModelName)
	assert.Equal(t, 5, config.Classifier.TimeoutSeconds)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
ai:
  requests_per_minute: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	t.Setenv("SMSCAT_LOG_LEVEL", "error")
	t.Setenv("SMSCAT_AI_REQUESTS_PER_MINUTE", "25")
	t.Setenv("GEMINI_API_KEY", "env-api-key")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, 25, config.AI.RequestsPerMinute)
	assert.Equal(t, "env-api-key", config.AI.APIKey)
}

func TestInitializeConfig_InvalidFromEnvironment(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)
	t.Setenv("SMSCAT_CLASSIFIER_BACKEND", "tflite")

	config, err := InitializeConfig()
	require.NoError(t, err)

	err = config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid classifier backend")
}

func TestInitializeConfig_ValidatesAfterOverrides(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
classifier:
  backend: "gemini"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0600))

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, BackendGemini, config.Classifier.Backend)

	err = config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY required")

	config.Classifier.Backend = BackendNone
	assert.NoError(t, config.Validate())
}

func validConfig() *Config {
	return &Config{
		Log:        LogConfig{Level: "info", Format: "text"},
		CSV:        CSVConfig{Delimiter: ","},
		Classifier: ClassifierConfig{Backend: BackendNone, ServingURL: "http://localhost:8501", ModelName: "m", TimeoutSeconds: 10},
		AI:         AIConfig{RequestsPerMinute: 10},
	}
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{name: "invalid log level", modifyConfig: func(c *Config) { c.Log.Level = "invalid" }, expectError: "invalid log level"},
		{name: "invalid log format", modifyConfig: func(c *Config) { c.Log.Format = "xml" }, expectError: "invalid log format"},
		{name: "invalid CSV delimiter", modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" }, expectError: "CSV delimiter must be a single character"},
		{name: "negative workers", modifyConfig: func(c *Config) { c.Batch.Workers = -1 }, expectError: "batch.workers must not be negative"},
		{name: "unknown backend", modifyConfig: func(c *Config) { c.Classifier.Backend = "onnx" }, expectError: "invalid classifier backend"},
		{
			name: "serving without url",
			modifyConfig: func(c *Config) {
				c.Classifier.Backend = BackendServing
				c.Classifier.ServingURL = ""
			},
			expectError: "classifier.serving_url required",
		},
		{
			name: "serving without model",
			modifyConfig: func(c *Config) {
				c.Classifier.Backend = BackendServing
				c.Classifier.ModelName = ""
			},
			expectError: "classifier.model_name required",
		},
		{
			name: "serving timeout",
			modifyConfig: func(c *Config) {
				c.Classifier.Backend = BackendServing
				c.Classifier.TimeoutSeconds = 0
			},
			expectError: "classifier.timeout_seconds must be between 1 and 300",
		},
		{
			name:         "gemini without API key",
			modifyConfig: func(c *Config) { c.Classifier.Backend = BackendGemini },
			expectError:  "GEMINI_API_KEY required",
		},
		{
			name: "gemini requests per minute",
			modifyConfig: func(c *Config) {
				c.Classifier.Backend = BackendGemini
				c.AI.APIKey = "key"
				c.AI.RequestsPerMinute = 0
			},
			expectError: "ai.requests_per_minute must be between 1 and 1000",
		},
	}

	require.NoError(t, validateConfig(validConfig()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		config := validConfig()
		config.Log.Format = format
		logger := NewLogger(config)
		require.NotNil(t, logger)

		adapter, ok := logger.(*logging.LogrusAdapter)
		require.True(t, ok)
		assert.Equal(t, "info", adapter.Underlying().GetLevel().String())
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SMSCAT_TEST_FROM_DOTENV=loaded\n"), 0600))

	// Setenv restores the variable after the test; godotenv only sets absent ones.
	t.Setenv("SMSCAT_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("SMSCAT_TEST_FROM_DOTENV"))
	logger := logging.NewMockLogger()
	loadEnvFile(logger)

	assert.Equal(t, "loaded", os.Getenv("SMSCAT_TEST_FROM_DOTENV"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))
}

// chdirTemp switches into a fresh directory for the duration of the test so
// no stray config.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalDir)
	})
	return dir
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, envVar := range []string{
		"SMSCAT_LOG_LEVEL",
		"SMSCAT_LOG_FORMAT",
		"SMSCAT_CSV_DELIMITER",
		"SMSCAT_CATEGORIES_FILE",
		"SMSCAT_CLASSIFIER_BACKEND",
		"SMSCAT_CLASSIFIER_VOCABULARY_FILE",
		"SMSCAT_CLASSIFIER_LABELS_FILE",
		"SMSCAT_CLASSIFIER_SERVING_URL",
		"SMSCAT_CLASSIFIER_MODEL_NAME",
		"SMSCAT_CLASSIFIER_TIMEOUT_SECONDS",
		"SMSCAT_AI_MODEL",
		"SMSCAT_AI_REQUESTS_PER_MINUTE",
		"SMSCAT_AI_API_KEY",
		"SMSCAT_BATCH_WORKERS",
		"GEMINI_API_KEY",
	} {
		t.Setenv(envVar, "")
	}
}
