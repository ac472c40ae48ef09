// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/sms-categorizer/internal/config"
	"fjacquet/sms-categorizer/internal/container"
	"fjacquet/sms-categorizer/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	LogLevel  string
	Delimiter string
	Backend   string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.GetLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sms-categorizer",
		Short: "A CLI tool to parse and categorize bank transaction SMS messages.",
		Long: `sms-categorizer parses bank and card transaction notifications into structured
records (direction, amount, counterparty, date) using an ordered set of bank templates,
and assigns each a spending category from keyword rules or a fallback classifier.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sms-categorizer!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil {
				return
			}
			if err := appContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close classifier backend")
			}
		},
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	appConfig    *config.Config
	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Delimiter, "csv-delimiter", "", "CSV delimiter for batch files")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Backend, "classifier", "", "Fallback classifier backend (none, serving, gemini)")
}

// initialize loads .env and the configuration, applies flag overrides and
// builds the dependency container.
func initialize() error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	appConfig = cfg
	appContainer = c
	Log = c.GetLogger()
	logging.SetLogger(Log)
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.Delimiter != "" {
		cfg.CSV.Delimiter = SharedFlags.Delimiter
	}
	if SharedFlags.Backend != "" {
		cfg.Classifier.Backend = SharedFlags.Backend
	}
}

// GetContainer returns the dependency container built for the running
// command, or nil before initialization.
func GetContainer() *container.Container {
	return appContainer
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return appConfig
}

// GetLogger returns the shared command logger.
func GetLogger() logging.Logger {
	return Log
}

// Delimiter returns the configured CSV delimiter, defaulting to a comma.
func Delimiter() rune {
	if appConfig == nil || appConfig.CSV.Delimiter == "" {
		return ','
	}
	return []rune(appConfig.CSV.Delimiter)[0]
}
