// Package parse handles the parse command
package parse

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/sms-categorizer/cmd/root"
	"fjacquet/sms-categorizer/internal/logging"
	"fjacquet/sms-categorizer/internal/pipeline"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse <message>",
	Short: "Parse a transaction message and categorize it",
	Long: `Parse a single bank transaction message into a structured record and assign a category.

Templates are tried first; when none matches, the configured fallback classifier is used
and the message is flagged for manual tagging if no classifier is available.

Example:
  sms-categorizer parse "Spent Rs.500 On HDFC Bank Card 1234 At AMAZON On 12-01-23."`,
	Args: cobra.MinimumNArgs(1),
	RunE: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	return Run(cmd.Context(), appContainer.GetPipeline(), strings.Join(args, " "), cmd.OutOrStdout(), root.GetLogger())
}

// Run processes text through p and writes the result as YAML to w. A
// classifier failure is logged and reported in the output, not returned.
func Run(ctx context.Context, p *pipeline.Pipeline, text string, w io.Writer, logger logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logging.OrDefault(logger)

	result, err := p.Process(ctx, text)
	if err != nil {
		logger.WithError(err).Warn("Message left for manual tagging")
	}

	encoder := yaml.NewEncoder(w)
	if err := encoder.Encode(result.Row("", err)); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return encoder.Close()
}
