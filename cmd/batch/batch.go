// Package batch handles batch processing of message files
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/sms-categorizer/cmd/root"
	"fjacquet/sms-categorizer/internal/common"
	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/models"
	"fjacquet/sms-categorizer/internal/pipeline"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process message CSV files",
	Long: `Batch process a CSV file of messages, or every CSV file in an input directory.

Input files need a Text column and may carry an ID column; rows without an ID get a
generated one. Each output file lists the parsed fields, the category and where it
came from, and whether the message needs manual tagging.

Example:
  sms-categorizer batch -i messages.csv -o categorized.csv
  sms-categorizer batch -i input_dir/ -o output_dir/`,
	RunE: batchFunc,
}

// Runner processes message files with a pipeline and a worker pool.
type Runner struct {
	Pipeline  *pipeline.Pipeline
	Processor *common.BatchProcessor
	Delimiter rune
	Logger    logging.Logger
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputPath := root.SharedFlags.Input
	outputPath := root.SharedFlags.Output
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("input and output must be specified")
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	runner := &Runner{
		Pipeline:  appContainer.GetPipeline(),
		Processor: appContainer.GetBatchProcessor(),
		Delimiter: root.Delimiter(),
		Logger:    appContainer.GetLogger(),
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("failed to access input: %w", err)
	}

	if info.IsDir() {
		count, err := runner.ProcessDir(cmd.Context(), inputPath, outputPath)
		if err != nil {
			return err
		}
		runner.Logger.Info(fmt.Sprintf("Batch processing completed. %d files categorized.", count))
		return nil
	}

	stats, err := runner.ProcessFile(cmd.Context(), inputPath, outputPath)
	if err != nil {
		return err
	}
	stats.LogSummary(runner.Logger, inputPath)
	return nil
}

// ProcessFile categorizes every message of inputFile and writes the results
// to outputFile.
func (r *Runner) ProcessFile(ctx context.Context, inputFile, outputFile string) (*models.CategorizationStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.OrDefault(r.Logger)

	messages, err := common.ReadMessages(inputFile, r.Delimiter, logger)
	if err != nil {
		return nil, err
	}

	rows := r.Processor.Process(ctx, messages, func(ctx context.Context, msg models.MessageRow) models.ResultRow {
		result, err := r.Pipeline.Process(ctx, msg.Text)
		if err != nil {
			logger.WithError(err).Warn("Message left for manual tagging",
				logging.Field{Key: "id", Value: msg.ID})
		}
		return result.Row(msg.ID, err)
	})

	stats := models.NewCategorizationStats()
	for _, row := range rows {
		stats.Add(row)
	}

	if err := common.WriteResults(rows, outputFile, r.Delimiter, logger); err != nil {
		return nil, err
	}
	return stats, nil
}

// ProcessDir runs ProcessFile over every .csv file in inputDir, writing one
// result file per input into outputDir. Files that fail are logged and
// skipped. It returns the number of files written.
func (r *Runner) ProcessDir(ctx context.Context, inputDir, outputDir string) (int, error) {
	logger := logging.OrDefault(r.Logger)

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read input directory: %w", err)
	}

	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".csv") {
			continue
		}

		inputFile := filepath.Join(inputDir, entry.Name())
		outputFile := filepath.Join(outputDir, OutputFilename(entry.Name()))

		stats, err := r.ProcessFile(ctx, inputFile, outputFile)
		if err != nil {
			logger.WithError(err).Error("Failed to process file",
				logging.Field{Key: logging.FieldInputFile, Value: inputFile})
			continue
		}
		stats.LogSummary(logger, inputFile)
		count++
	}

	if count == 0 {
		logger.Warn("No CSV files processed in input directory",
			logging.Field{Key: "directory", Value: inputDir})
	}
	return count, nil
}

// OutputFilename derives the result file name for an input file name.
func OutputFilename(inputName string) string {
	base := strings.TrimSuffix(inputName, filepath.Ext(inputName))
	return base + "_categorized.csv"
}
